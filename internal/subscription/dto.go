package subscription

import "time"

type CreateSubscriptionRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"fullName" binding:"required,notblank,max=100"`
}

type SubscriptionResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
