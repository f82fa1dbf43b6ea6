package controller

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/atelier-moveis/atelier-backend/identity"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/util/common"
	"github.com/atelier-moveis/atelier-backend/web/middleware"
	"github.com/atelier-moveis/atelier-backend/web/service"

	"github.com/gin-gonic/gin"
)

const (
	maxFileSize  = 5 << 20 // per-file upload cap
	maxFileCount = 10
)

var errFileTooLarge = common.NewError("Arquivo excede o limite de 5MB")

// ProductController serves the public product listing and the admin-gated
// create/delete operations.
type ProductController struct {
	svc *service.ProductService
}

func NewProductController(g *gin.RouterGroup, svc *service.ProductService, provider identity.Provider, profiles *service.ProfileService) *ProductController {
	p := &ProductController{svc: svc}

	g.GET("/products", p.list)

	admin := g.Group("/products")
	admin.Use(middleware.AuthRequired(provider), middleware.AdminRequired(profiles))
	{
		admin.POST("", p.create)
		admin.DELETE("/:id", p.delete)
	}
	return p
}

func (p *ProductController) list(c *gin.Context) {
	products, err := p.svc.List()
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, products)
}

func (p *ProductController) create(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" || description == "" {
		jsonError(c, http.StatusBadRequest, "Título e descrição são obrigatórios")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Formulário inválido")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		jsonError(c, http.StatusBadRequest, "Nenhuma imagem enviada")
		return
	}
	if len(headers) > maxFileCount {
		jsonError(c, http.StatusBadRequest, "Máximo de 10 imagens por produto")
		return
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		files = append(files, file)
	}

	if err := p.svc.Create(c.Request.Context(), title, description, files); err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	jsonOk(c, http.StatusCreated)
}

// delete always answers 200: blob cleanup is best-effort and the row
// deletion's outcome is not part of the contract.
func (p *ProductController) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		jsonOk(c, http.StatusOK)
		return
	}

	if err := p.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		logger.Warning("delete product", id, "failed:", err)
	}
	jsonOk(c, http.StatusOK)
}

// readUpload buffers one multipart part, enforcing the per-file cap
// before the bytes are held in memory.
func readUpload(header *multipart.FileHeader) (service.UploadFile, error) {
	if header.Size > maxFileSize {
		return service.UploadFile{}, errFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return service.UploadFile{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxFileSize+1))
	if err != nil {
		return service.UploadFile{}, err
	}
	if len(data) > maxFileSize {
		return service.UploadFile{}, errFileTooLarge
	}

	return service.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
