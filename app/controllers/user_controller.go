package controllers

import (
	"net/http"

	"github.com/gymstack/gymcore/app/services"
	"github.com/gymstack/gymcore/pkg/auth"
	"github.com/gymstack/gymcore/pkg/response"
)

// UserController serves the routes of a logged-in member.
type UserController struct {
	members *services.MemberService
}

func NewUserController(members *services.MemberService) *UserController {
	return &UserController{members: members}
}

func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.MemberFromContext(r.Context())
	if !ok {
		response.Forbidden(w)
		return
	}
	profile, err := c.members.Profile(r.Context(), p)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, profile)
}

func (c *UserController) Plans(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.MemberFromContext(r.Context())
	if !ok {
		response.Forbidden(w)
		return
	}
	plans, err := c.members.Plans(r.Context(), p)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, plans)
}
