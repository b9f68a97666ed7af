package subscription

import (
	"context"
	"strings"
	"time"

	"github.com/fpt-software/website-api/internal/shared/logger"
)

// SubscriptionService accepts newsletter sign-ups. Nothing is stored or sent;
// each sign-up is only logged.
type SubscriptionService struct {
	now func() time.Time
}

func NewSubscriptionService() *SubscriptionService {
	return &SubscriptionService{now: time.Now}
}

func (s *SubscriptionService) Create(ctx context.Context, request CreateSubscriptionRequest) SubscriptionResponse {
	logger.Named(ctx, "subscription").Info("subscription received",
		"full_name", strings.TrimSpace(request.FullName),
		"email", logger.MaskEmail(request.Email),
	)

	return SubscriptionResponse{
		Message:   "Subscription received successfully",
		Timestamp: s.now().UTC(),
	}
}
