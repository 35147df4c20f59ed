package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup/helper"
	"matchup/middlewares"
	"matchup/models"
	"matchup/services"
)

type AuthController struct {
	auth         *services.AuthService
	cookieSecure bool
}

func NewAuthController(auth *services.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{auth: auth, cookieSecure: cookieSecure}
}

func (ctl *AuthController) Register(c *gin.Context) {
	var in models.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	user, err := ctl.auth.Register(ctx, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ctl *AuthController) Login(c *gin.Context) {
	var in models.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	token, err := ctl.auth.Login(ctx, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctl.setToken(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ctl *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middlewares.TokenCookie, "", -1, "/", "", ctl.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ctl *AuthController) Me(c *gin.Context) {
	claims, err := helper.CurrentClaims(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	profile, err := ctl.auth.Me(ctx, claims)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctl *AuthController) SendOTP(c *gin.Context) {
	var body struct {
		Phone string `json:"phone"`
	}
	if !bindJSON(c, &body) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	if err := ctl.auth.SendOTP(ctx, body.Phone); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

func (ctl *AuthController) VerifyOTP(c *gin.Context) {
	var body struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if !bindJSON(c, &body) {
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	token, err := ctl.auth.VerifyOTP(ctx, body.Phone, body.Code)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctl.setToken(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ctl *AuthController) setToken(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middlewares.TokenCookie, token, int(ctl.auth.Tokens().TTL().Seconds()), "/", "", ctl.cookieSecure, true)
}
