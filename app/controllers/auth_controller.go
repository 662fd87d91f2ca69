package controllers

import (
	"net/http"

	"github.com/gymstack/gymcore/app/services"
	"github.com/gymstack/gymcore/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decode(w, r, &in) {
		return
	}
	res, err := c.service.Register(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, res)
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if !decode(w, r, &in) {
		return
	}
	res, err := c.service.Login(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, res)
}
