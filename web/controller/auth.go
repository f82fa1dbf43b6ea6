package controller

import (
	"net/http"

	"github.com/atelier-moveis/atelier-backend/identity"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController serves registration, login and password recovery.
type AuthController struct {
	provider          identity.Provider
	profiles          *service.ProfileService
	recoverRedirectTo string
}

func NewAuthController(g *gin.RouterGroup, provider identity.Provider, profiles *service.ProfileService, recoverRedirectTo string) *AuthController {
	a := &AuthController{
		provider:          provider,
		profiles:          profiles,
		recoverRedirectTo: recoverRedirectTo,
	}

	auth := g.Group("/auth")
	{
		auth.POST("/register", a.register)
		auth.POST("/login", a.login)
		auth.POST("/recover", a.recover)
	}
	return a
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	CPF      string `json:"cpf"`
	Telefone string `json:"telefone"`
}

// register creates the identity user (email pre-confirmed) and its
// profile row. A profile-insert failure aborts with the store's message;
// the already-created identity user is not rolled back.
func (a *AuthController) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Dados incompletos")
		return
	}
	if req.Email == "" || req.Password == "" || req.CPF == "" || req.Telefone == "" {
		jsonError(c, http.StatusBadRequest, "Dados incompletos")
		return
	}

	user, err := a.provider.CreateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.profiles.Create(user.Id, req.CPF, req.Telefone); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	jsonOk(c, http.StatusCreated)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login never surfaces provider detail on failure, to avoid user
// enumeration.
func (a *AuthController) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusUnauthorized, "Login inválido")
		return
	}

	session, err := a.provider.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Debug("login failed:", err)
		jsonError(c, http.StatusUnauthorized, "Login inválido")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": session.AccessToken,
		"user":         session.User,
	})
}

type recoverReq struct {
	Email string `json:"email"`
}

func (a *AuthController) recover(c *gin.Context) {
	var req recoverReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		jsonError(c, http.StatusBadRequest, "Email é obrigatório")
		return
	}

	if err := a.provider.Recover(c.Request.Context(), req.Email, a.recoverRedirectTo); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	jsonOk(c, http.StatusOK)
}
