package config

import "strings"

// Set overrides a key for the rest of the test binary.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}
