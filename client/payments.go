package client

import (
	"context"
	"fmt"
	"net/http"

	"buckler/models"
)

// ProcessPayment routes a payment intent to the card or mobile endpoint.
// The gateway itself is backend-owned; the client submits once and never
// retries automatically.
func (c *Client) ProcessPayment(ctx context.Context, intent models.PaymentIntent) (models.PaymentResult, error) {
	var result models.PaymentResult
	var path string
	switch intent.Method {
	case models.MethodCard:
		path = "/api/v1/payments/card"
	case models.MethodMobile:
		path = "/api/v1/payments/mobile"
	default:
		return result, fmt.Errorf("unsupported payment method: %s", intent.Method)
	}
	err := c.do(ctx, http.MethodPost, path, intent, &result, requestOptions{})
	return result, err
}
