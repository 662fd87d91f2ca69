// Package rbac provides the role gates mounted after middleware.Authenticate.
//
// Every gate answers 401 when no principal is in the context and 403
// {"msg":"Access denied"} when the principal is of the wrong kind.
package rbac

import (
	"context"
	"errors"
	"net/http"

	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/logger"
	"github.com/gymstack/gymcore/pkg/metrics"
	"github.com/gymstack/gymcore/pkg/response"
)

// ErrUnknownMember is returned by a RoleLookup when the member id has no record.
var ErrUnknownMember = errors.New("rbac: unknown member")

// RoleLookup reads a member's current role from the store.
type RoleLookup interface {
	MemberRole(ctx context.Context, memberID uint) (auth.Role, error)
}

// RoleLookupFunc adapts a function to RoleLookup.
type RoleLookupFunc func(ctx context.Context, memberID uint) (auth.Role, error)

func (f RoleLookupFunc) MemberRole(ctx context.Context, memberID uint) (auth.Role, error) {
	return f(ctx, memberID)
}

func deny(w http.ResponseWriter, r *http.Request, gate string) {
	metrics.GateDenials.WithLabelValues(gate).Inc()
	logger.WithCtx(r.Context()).Debug("gate denied", "gate", gate, "path", r.URL.Path)
	response.Forbidden(w)
}

// GymOnly admits gym principals.
func GymOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.FromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "No token, authorization denied")
			return
		}
		if _, ok := p.(auth.GymPrincipal); !ok {
			deny(w, r, "gym")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserOnly admits member principals of any role.
func UserOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.FromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "No token, authorization denied")
			return
		}
		if _, ok := p.(auth.MemberPrincipal); !ok {
			deny(w, r, "user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SuperAdminOnly admits members whose stored role is super_admin. The role is
// read through lookup on every request, so a demotion takes effect before the
// token expires.
func SuperAdminOnly(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.FromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "No token, authorization denied")
				return
			}
			m, ok := p.(auth.MemberPrincipal)
			if !ok {
				deny(w, r, "super_admin")
				return
			}

			role, err := lookup.MemberRole(r.Context(), m.ID)
			switch {
			case errors.Is(err, ErrUnknownMember):
				deny(w, r, "super_admin")
				return
			case err != nil:
				logger.WithCtx(r.Context()).Error("role lookup failed", "member_id", m.ID, "error", err)
				response.ServerError(w)
				return
			case role != auth.RoleSuperAdmin:
				deny(w, r, "super_admin")
				return
			}

			m.Role = role
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), m)))
		})
	}
}
