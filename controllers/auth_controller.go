package controllers

import (
	"pousada/dto"
	"pousada/middleware"
	"pousada/response"
	"pousada/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginInput
	if !bindJSON(ctx, &req) {
		return
	}
	user, token, err := c.service.Login(req.Email, req.Password)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.LoginResponse{Token: token, User: *user})
}

// Verify echoes the user the bearer token belongs to
func (c *AuthController) Verify(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		response.Unauthorized(ctx)
		return
	}
	response.Success(ctx, user)
}

func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.service.Logout(ctx.Request.Context(), middleware.BearerToken(ctx)); err != nil {
		fail(ctx, err)
		return
	}
	response.Deleted(ctx)
}
