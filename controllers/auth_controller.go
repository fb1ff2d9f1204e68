package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"order-api/middlewares"
	"order-api/models"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

type AuthController struct {
	auth AuthService
}

func NewAuthController(auth AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ctl *AuthController) Register(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAuthOperation("register", status)
	}()

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := ctl.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, map[error]string{
			models.ErrConflict: "User with email already present",
		})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}

func (ctl *AuthController) Login(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAuthOperation("login", status)
	}()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := ctl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, map[error]string{
			models.ErrForbidden: "email and/or password not correct.",
		})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}
