// Package validate checks struct fields against `validate` tag rules.
//
// Rules, comma separated:
//
//	required        value must not be zero, empty, or nil
//	nullable        skip the remaining rules when the value is empty
//	email           well-formed email address
//	min=N / max=N   string length (runes) or numeric value bounds
//	maxbytes=N      string length in bytes, for byte-limited values like bcrypt input
//	in=a|b|c        value must be one of the listed items
//	dive            validate each struct element of a slice
//
// Example:
//
//	type Input struct {
//	    Email string `json:"email" validate:"required,email,max=255"`
//	    Role  string `json:"role"  validate:"required,in=user|gym_admin"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Struct validates the exported fields of v. The returned map is keyed by
// JSON field name; an empty map means v is valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	validateStruct(reflect.ValueOf(v), "", errs)
	return errs
}

// HasErrors reports whether errs is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func validateStruct(rv reflect.Value, prefix string, errs map[string]string) {
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := prefix + jsonFieldName(field)
		value := rv.Field(i)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if rule == "dive" {
				dive(value, name, errs)
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
}

func dive(v reflect.Value, name string, errs map[string]string) {
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return
	}
	for i := 0; i < v.Len(); i++ {
		validateStruct(v.Index(i), fmt.Sprintf("%s.%d.", name, i), errs)
	}
}

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(strings.TrimSpace(rule), "=")

	if key != "required" {
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return ""
			}
			v = v.Elem()
		}
	}

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(fmt.Sprint(v.Interface())) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "min", "max":
		limit, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return fmt.Sprintf("invalid %s rule on %s", key, field)
		}
		n, isString := measure(v)
		if (key == "min" && n < limit) || (key == "max" && n > limit) {
			return boundMessage(key, field, param, isString)
		}
	case "maxbytes":
		limit, err := strconv.Atoi(param)
		if err != nil {
			return fmt.Sprintf("invalid %s rule on %s", key, field)
		}
		if v.Kind() == reflect.String && len(v.String()) > limit {
			return fmt.Sprintf("The %s must be at most %s bytes.", field, param)
		}
	case "in":
		got := fmt.Sprint(v.Interface())
		for _, allowed := range strings.Split(param, "|") {
			if got == allowed {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("unknown validation rule %q on %s", key, field)
	}
	return ""
}

func measure(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.String:
		return float64(utf8.RuneCountInString(v.String())), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), false
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), false
	case reflect.Float32, reflect.Float64:
		return v.Float(), false
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(v.Len()), false
	}
	return 0, false
}

func boundMessage(key, field, param string, isString bool) string {
	word := "at least"
	if key == "max" {
		word = "at most"
	}
	if isString {
		return fmt.Sprintf("The %s must be %s %s characters.", field, word, param)
	}
	return fmt.Sprintf("The %s must be %s %s.", field, word, param)
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	}
	return v.IsZero()
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
