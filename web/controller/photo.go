package controller

import (
	"net/http"
	"strconv"

	"github.com/atelier-moveis/atelier-backend/database"
	"github.com/atelier-moveis/atelier-backend/identity"
	"github.com/atelier-moveis/atelier-backend/web/middleware"
	"github.com/atelier-moveis/atelier-backend/web/service"

	"github.com/gin-gonic/gin"
)

// PhotoController serves the standalone gallery: public listing plus
// admin-gated upload, description edit and deletion.
type PhotoController struct {
	svc *service.PhotoService
}

func NewPhotoController(g *gin.RouterGroup, svc *service.PhotoService, provider identity.Provider, profiles *service.ProfileService) *PhotoController {
	p := &PhotoController{svc: svc}

	g.GET("/photos", p.list)

	admin := g.Group("/photos")
	admin.Use(middleware.AuthRequired(provider), middleware.AdminRequired(profiles))
	{
		admin.POST("", p.create)
		admin.PUT("/:id", p.update)
		admin.DELETE("/:id", p.delete)
	}
	return p
}

func (p *PhotoController) list(c *gin.Context) {
	photos, err := p.svc.List()
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (p *PhotoController) create(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Nenhuma imagem enviada")
		return
	}

	file, err := readUpload(header)
	if err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	url, err := p.svc.Create(c.Request.Context(), file)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

type photoUpdateReq struct {
	Description string `json:"description"`
}

func (p *PhotoController) update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Id inválido")
		return
	}

	var req photoUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Description == "" {
		jsonError(c, http.StatusBadRequest, "Descrição é obrigatória")
		return
	}

	if err := p.svc.UpdateDescription(uint(id), req.Description); err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	jsonOk(c, http.StatusOK)
}

func (p *PhotoController) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		jsonError(c, http.StatusNotFound, "Foto não encontrada")
		return
	}

	if err := p.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		if database.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "Foto não encontrada")
			return
		}
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	jsonOk(c, http.StatusOK)
}
