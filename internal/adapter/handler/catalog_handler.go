package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tgcloud/tgcloud/internal/domain/entities"
	"github.com/tgcloud/tgcloud/internal/usecase"
)

// CatalogHandler exposes the per-session file catalog: upload, download,
// delete, listing, statistics and share-token issuance.
type CatalogHandler struct {
	sessions *usecase.SessionUseCase
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(sessions *usecase.SessionUseCase) *CatalogHandler {
	return &CatalogHandler{sessions: sessions}
}

// RegisterRoutes registers catalog routes on an authenticated group.
func (h *CatalogHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/sessions/:id/files", h.Upload)
	api.GET("/sessions/:id/files", h.List)
	api.GET("/sessions/:id/files/:name", h.Download)
	api.DELETE("/sessions/:id/files/:name", h.Delete)
	api.POST("/sessions/:id/folders", h.UploadFolder)
	api.POST("/sessions/:id/shares", h.Share)
	api.GET("/sessions/:id/stats", h.Stats)
}

func (h *CatalogHandler) catalog(c *gin.Context) (*usecase.CatalogUseCase, bool) {
	catalog, err := h.sessions.Catalog(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return catalog, true
}

// Upload stores a multipart file under an optional custom name
// @Summary Upload a file
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Router /api/sessions/{id}/files [post]
func (h *CatalogHandler) Upload(c *gin.Context) {
	catalog, ok := h.catalog(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reading file: " + err.Error()})
		return
	}

	result, err := catalog.Upload(c.Request.Context(), payload, header.Filename, c.PostForm("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyStored {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// UploadFolder zips a server-side folder and uploads the archive
// @Summary Upload a folder as a zip archive
// @Tags Catalog
// @Accept json
// @Produce json
// @Router /api/sessions/{id}/folders [post]
func (h *CatalogHandler) UploadFolder(c *gin.Context) {
	catalog, ok := h.catalog(c)
	if !ok {
		return
	}

	var req struct {
		Path string `json:"path" binding:"required"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}

	result, err := catalog.UploadFolder(c.Request.Context(), req.Path, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List returns the filtered, ordered catalog
// @Summary List files
// @Tags Catalog
// @Produce json
// @Router /api/sessions/{id}/files [get]
func (h *CatalogHandler) List(c *gin.Context) {
	catalog, ok := h.catalog(c)
	if !ok {
		return
	}

	opts := entities.ListOptions{
		Query:      c.Query("q"),
		SortBy:     c.DefaultQuery("sort", entities.SortByName),
		Descending: c.Query("order") == "desc",
	}
	files := catalog.List(opts)
	c.JSON(http.StatusOK, gin.H{"files": files, "count": len(files)})
}

// Download streams a catalogued file back to the caller
// @Summary Download a file
// @Tags Catalog
// @Produce octet-stream
// @Router /api/sessions/{id}/files/{name} [get]
func (h *CatalogHandler) Download(c *gin.Context) {
	catalog, ok := h.catalog(c)
	if !ok {
		return
	}

	name := c.Param("name")
	data, _, err := catalog.Download(c.Request.Context(), name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// Delete removes a file from the catalog (the remote binary stays)
// @Summary Delete a file
// @Tags Catalog
// @Produce json
// @Router /api/sessions/{id}/files/{name} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	catalog, ok := h.catalog(c)
	if !ok {
		return
	}

	if err := catalog.Delete(c.Request.Context(), c.Param("name")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

// Share issues a self-contained share token for a file
// @Summary Share a file
// @Tags Catalog
// @Accept json
// @Produce json
// @Router /api/sessions/{id}/shares [post]
func (h *CatalogHandler) Share(c *gin.Context) {
	catalog, ok := h.catalog(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	token, err := catalog.Share(req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "url": "/share/" + token})
}

// Stats summarizes the catalog
// @Summary Catalog statistics
// @Tags Catalog
// @Produce json
// @Router /api/sessions/{id}/stats [get]
func (h *CatalogHandler) Stats(c *gin.Context) {
	catalog, ok := h.catalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, catalog.Stats())
}
