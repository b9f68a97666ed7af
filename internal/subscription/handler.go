package subscription

import (
	"net/http"

	"github.com/fpt-software/website-api/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var request CreateSubscriptionRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	c.JSON(http.StatusCreated, h.subscriptionService.Create(c.Request.Context(), request))
}
