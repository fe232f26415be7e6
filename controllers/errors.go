package controllers

import (
	"context"
	"errors"
	"net/http"

	"lumina-store/libs"
	"lumina-store/models"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrProductNotFound):
		status, message = http.StatusNotFound, "Product not found"
	case errors.Is(err, services.ErrNoCheckout):
		status, message = http.StatusNotFound, "No checkout in progress"
	case errors.Is(err, services.ErrEmptyCart):
		status, message = http.StatusConflict, "Cart is empty"
	case errors.Is(err, services.ErrCheckoutBlocked):
		status, message = http.StatusForbidden, services.SecurityAlertMessage
	case errors.Is(err, services.ErrCheckoutCompleted):
		status, message = http.StatusConflict, "Checkout already completed"
	case errors.Is(err, services.ErrSubmitting):
		status, message = http.StatusConflict, "Order submission in progress"
	case errors.Is(err, services.ErrInvalidTransition):
		status, message = http.StatusConflict, "Action not allowed at this checkout step"
	case errors.Is(err, services.ErrInvalidPaymentMethod):
		status, message = http.StatusBadRequest, "Invalid payment method"
	case errors.Is(err, services.ErrSignUpInFlight):
		status, message = http.StatusConflict, "Sign-up already in progress"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, message = http.StatusRequestTimeout, "Request cancelled"
	default:
		libs.RequestLogger(c).Error("unhandled error", "error", err)
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
	})
}
