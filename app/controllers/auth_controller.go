package controllers

import (
	"net/http"

	"github.com/shringarlabs/shringar/app/services"
	"github.com/shringarlabs/shringar/pkg/bind"
	"github.com/shringarlabs/shringar/pkg/middleware"
	"github.com/shringarlabs/shringar/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	result, err := c.service.Register(input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, result)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	result, err := c.service.Login(input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, result)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	user, err := c.service.Me(userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, user)
}
