package announcement

import (
	"net/http"

	"github.com/fpt-software/website-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

const fileField = "file"

type AnnouncementHandler struct {
	announcementService *AnnouncementService
}

func NewAnnouncementHandler(announcementService *AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var request CreateAnnouncementRequest
	if !handler.BindBody(c, &request) {
		return
	}
	file, ok := handler.FormFile(c, fileField)
	if !ok {
		return
	}

	response, err := h.announcementService.Create(c.Request.Context(), request, file)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// FindAll lists published announcements.
func (h *AnnouncementHandler) FindAll(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	page, err := h.announcementService.ListPublished(c.Request.Context(), query)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// FindAllForAdmin lists every announcement, published or not.
func (h *AnnouncementHandler) FindAllForAdmin(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	page, err := h.announcementService.ListAll(c.Request.Context(), query)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *AnnouncementHandler) FilterOptions(c *gin.Context) {
	options, err := h.announcementService.FilterOptions(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *AnnouncementHandler) FindOne(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.announcementService.FindOne(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request UpdateAnnouncementRequest
	if !handler.BindBody(c, &request) {
		return
	}
	file, ok := handler.FormFile(c, fileField)
	if !ok {
		return
	}

	response, err := h.announcementService.Update(c.Request.Context(), id, request, file)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *AnnouncementHandler) Remove(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Remove(c.Request.Context(), id); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	handler.NoContent(c)
}

// Upload stores a standalone file, e.g. an image embedded in content.
func (h *AnnouncementHandler) Upload(c *gin.Context) {
	file, ok := handler.FormFile(c, fileField)
	if !ok {
		return
	}

	result, err := h.announcementService.UploadFile(c.Request.Context(), file)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		Data:    result,
	})
}
