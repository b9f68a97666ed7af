package user

import (
	"net/http"

	"github.com/fpt-software/website-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *UserService
}

func NewUserHandler(userService *UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *gin.Context) {
	var request CreateUserRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.userService.Create(c.Request.Context(), request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *UserHandler) FindAll(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	page, err := h.userService.List(c.Request.Context(), query)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) FilterOptions(c *gin.Context) {
	options, err := h.userService.FilterOptions(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *UserHandler) FindOne(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.userService.FindOne(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request UpdateUserRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.userService.Update(c.Request.Context(), id, request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) Remove(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Remove(c.Request.Context(), id); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	handler.NoContent(c)
}
