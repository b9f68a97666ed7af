package industry

import (
	"net/http"

	"github.com/fpt-software/website-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type IndustryHandler struct {
	industryService *IndustryService
}

func NewIndustryHandler(industryService *IndustryService) *IndustryHandler {
	return &IndustryHandler{industryService: industryService}
}

func (h *IndustryHandler) Create(c *gin.Context) {
	var request CreateIndustryRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.industryService.Create(c.Request.Context(), request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *IndustryHandler) FindAll(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	page, err := h.industryService.List(c.Request.Context(), query)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *IndustryHandler) FilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.industryService.FilterOptions())
}

func (h *IndustryHandler) FindOne(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.industryService.FindOne(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *IndustryHandler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request UpdateIndustryRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.industryService.Update(c.Request.Context(), id, request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *IndustryHandler) Remove(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.industryService.Remove(c.Request.Context(), id); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	handler.NoContent(c)
}
