package controllers

import (
	"net/http"

	"github.com/gymstack/gymcore/app/services"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/response"
)

// AdminController serves /admin, mounted behind rbac.SuperAdminOnly.
type AdminController struct {
	admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{admin: admin}
}

func (c *AdminController) Gyms(w http.ResponseWriter, r *http.Request) {
	gyms, err := c.admin.ListGyms(r.Context(), pageOf(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, gyms)
}

func (c *AdminController) DeleteGym(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	actor, _ := auth.MemberFromContext(r.Context())
	if err := c.admin.DeleteGym(r.Context(), actor, id); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w)
}

func (c *AdminController) VerifyGym(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.VerifyInput
	if !decode(w, r, &in) {
		return
	}
	gym, err := c.admin.VerifyGym(r.Context(), id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, gym)
}

func (c *AdminController) Members(w http.ResponseWriter, r *http.Request) {
	members, err := c.admin.ListMembers(r.Context(), pageOf(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, members)
}

func (c *AdminController) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.SetRoleInput
	if !decode(w, r, &in) {
		return
	}
	actor, _ := auth.MemberFromContext(r.Context())
	m, err := c.admin.SetRole(r.Context(), actor, id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, m)
}
