// Package controllers adapts HTTP requests to the services layer and maps
// service errors to status codes.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gymstack/gymcore/app/services"
	"github.com/gymstack/gymcore/pkg/bind"
	"github.com/gymstack/gymcore/pkg/logger"
	"github.com/gymstack/gymcore/pkg/orm"
	"github.com/gymstack/gymcore/pkg/response"
	"github.com/gymstack/gymcore/pkg/router"
)

// fail writes the response for err:
//
//	ErrInvalidCredentials      401
//	ErrCrossTenant             403
//	ErrNotFound                404
//	ErrEmailTaken, validation  422
//	ErrTooManyAttempts         429
//	anything else              500, logged
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid credentials")
	case errors.Is(err, services.ErrCrossTenant):
		logger.WithCtx(r.Context()).Warn("cross-tenant write refused", "path", r.URL.Path, "error", err)
		response.Forbidden(w)
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrEmailTaken):
		response.ValidationError(w, map[string]string{"email": "The email has already been taken."})
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.Is(err, services.ErrTooManyAttempts):
		response.Error(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
	default:
		logger.WithCtx(r.Context()).Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		response.ServerError(w)
	}
}

// decode binds the body into dest, writing a 422 and returning false when
// the body is malformed or invalid.
func decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	errs, err := bind.JSON(r, dest)
	if err != nil {
		response.ValidationError(w, map[string]string{"body": err.Error()})
		return false
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. A malformed id is reported as 404,
// the same as an id that does not exist.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	n, err := strconv.ParseUint(router.Param(r, "id"), 10, 64)
	if err != nil || n == 0 {
		response.NotFound(w)
		return 0, false
	}
	return uint(n), true
}

func pageOf(r *http.Request) orm.Page {
	q := r.URL.Query()
	number, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return orm.Page{Number: number, Limit: limit}
}
