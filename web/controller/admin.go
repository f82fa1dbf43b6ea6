package controller

import (
	"net/http"

	"github.com/atelier-moveis/atelier-backend/identity"
	"github.com/atelier-moveis/atelier-backend/web/middleware"
	"github.com/atelier-moveis/atelier-backend/web/service"

	"github.com/gin-gonic/gin"
)

// AdminController serves the panel's admin views (counters snapshot,
// client listing) and the authenticated profile bootstrap endpoint.
type AdminController struct {
	profiles *service.ProfileService
	stats    *service.StatsService
}

func NewAdminController(g *gin.RouterGroup, provider identity.Provider, profiles *service.ProfileService, stats *service.StatsService) *AdminController {
	a := &AdminController{profiles: profiles, stats: stats}

	admin := g.Group("/admin")
	admin.Use(middleware.AuthRequired(provider), middleware.AdminRequired(profiles))
	{
		admin.GET("/stats", a.snapshot)
		admin.GET("/clients", a.clients)
	}

	me := g.Group("/me")
	me.Use(middleware.AuthRequired(provider))
	{
		me.GET("", a.me)
	}
	return a
}

func (a *AdminController) snapshot(c *gin.Context) {
	row, err := a.stats.Get()
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, row)
}

func (a *AdminController) clients(c *gin.Context) {
	clients, err := a.profiles.ListClients()
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, clients)
}

// me returns the caller's profile, lazily creating it with role
// "cliente" on first authenticated access.
func (a *AdminController) me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, "Token inválido")
		return
	}

	profile, err := a.profiles.Ensure(user.Id)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": profile.Id, "role": profile.Role})
}
