package controller

import (
	"net/http"

	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/web/service"

	"github.com/gin-gonic/gin"
)

// StatsController serves the fire-and-forget counter bumps. Increments
// are best-effort analytics: a failed bump is logged and the request
// still succeeds.
type StatsController struct {
	svc *service.StatsService
}

func NewStatsController(g *gin.RouterGroup, svc *service.StatsService) *StatsController {
	s := &StatsController{svc: svc}

	stats := g.Group("/stats")
	{
		stats.POST("/visit", s.bump(svc.IncrementVisits))
		stats.POST("/click-image", s.bump(svc.IncrementImageClicks))
		stats.POST("/click-orcamento", s.bump(svc.IncrementOrcamentoClicks))
	}
	return s
}

func (s *StatsController) bump(increment func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := increment(); err != nil {
			logger.Warning("stats increment failed:", err)
		}
		jsonOk(c, http.StatusOK)
	}
}
