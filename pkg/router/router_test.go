package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/gym", tag("verify")).Group("members", tag("gate"))
	g.Get("/{id}", "members.show", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusNoContent)
	}, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gym/members/3", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"verify", "gate", "route", "handler"}, order)
}

func TestURLAndRoutes(t *testing.T) {
	r := New()
	g := r.Group("/gym")
	noop := func(http.ResponseWriter, *http.Request) {}
	g.Put("/members/{id}/plans", "members.plans", noop)
	g.Get("/members", "members.index", noop)
	g.Delete("/members/{id}", "", noop)

	url, err := r.URL("members.plans", map[string]string{"id": "9"})
	require.NoError(t, err)
	assert.Equal(t, "/gym/members/9/plans", url)

	_, err = r.URL("members.plans", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)

	routes := r.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/gym/members", routes[0].Path)
	assert.Equal(t, http.MethodPut, routes[1].Method)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/", joinPath("", "/"))
	assert.Equal(t, "/a/b", joinPath("/a/", "/b/"))
	assert.Equal(t, "/", normalizePath(""))
}
