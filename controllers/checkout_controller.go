package controllers

import (
	"net/http"

	"lumina-store/libs"
	"lumina-store/middleware"
	"lumina-store/models"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct{}

func (ctrl *CheckoutController) respondView(c *gin.Context, status int, message string, o *services.CheckoutOrchestrator) {
	c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    o.View(),
	})
}

// current loads the session's checkout or writes the error response.
func (ctrl *CheckoutController) current(c *gin.Context) (*services.CheckoutOrchestrator, bool) {
	o, err := middleware.CurrentSession(c).Checkout()
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return o, true
}

// @Summary Begin checkout
// @Description Starts a fresh checkout at the shipping step, discarding any previous one
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Response{data=models.CheckoutView}
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) BeginCheckout(c *gin.Context) {
	o, err := middleware.CurrentSession(c).BeginCheckout()
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.respondView(c, http.StatusCreated, "Checkout started", o)
}

// @Summary Get checkout state
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CheckoutView}
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout [get]
func (ctrl *CheckoutController) GetCheckout(c *gin.Context) {
	o, ok := ctrl.current(c)
	if !ok {
		return
	}
	ctrl.respondView(c, http.StatusOK, "Checkout retrieved", o)
}

// @Summary Abandon checkout
// @Description Discards the checkout, including a blocked one; the cart is kept
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout [delete]
func (ctrl *CheckoutController) AbandonCheckout(c *gin.Context) {
	if err := middleware.CurrentSession(c).AbandonCheckout(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout abandoned"})
}

// @Summary Continue to the next checkout step
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CheckoutView}
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout/continue [post]
func (ctrl *CheckoutController) Continue(c *gin.Context) {
	o, ok := ctrl.current(c)
	if !ok {
		return
	}
	if err := o.Continue(); err != nil {
		respondError(c, err)
		return
	}
	ctrl.respondView(c, http.StatusOK, "Checkout advanced", o)
}

// @Summary Go back one checkout step
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CheckoutView}
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout/back [post]
func (ctrl *CheckoutController) Back(c *gin.Context) {
	o, ok := ctrl.current(c)
	if !ok {
		return
	}
	if err := o.Back(); err != nil {
		respondError(c, err)
		return
	}
	ctrl.respondView(c, http.StatusOK, "Checkout moved back", o)
}

// @Summary Set shipping details
// @Description Details are stored as entered; no field is validated
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ShippingRequest true "Shipping details"
// @Success 200 {object} models.Response{data=models.CheckoutView}
// @Router /checkout/shipping [put]
func (ctrl *CheckoutController) SetShipping(c *gin.Context) {
	var req models.ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	o, ok := ctrl.current(c)
	if !ok {
		return
	}
	if err := o.SetShipping(models.ShippingDetails(req)); err != nil {
		respondError(c, err)
		return
	}
	ctrl.respondView(c, http.StatusOK, "Shipping details saved", o)
}

// @Summary Set payment details
// @Description Allowed on the payment and review steps
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PaymentRequest true "Payment details"
// @Success 200 {object} models.Response{data=models.CheckoutView}
// @Router /checkout/payment [put]
func (ctrl *CheckoutController) SetPayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	o, ok := ctrl.current(c)
	if !ok {
		return
	}
	details := models.PaymentDetails{
		Method:     models.PaymentMethod(req.Method),
		CardNumber: req.CardNumber,
		CVC:        req.CVC,
	}
	if err := o.SetPayment(details); err != nil {
		respondError(c, err)
		return
	}
	ctrl.respondView(c, http.StatusOK, "Payment details saved", o)
}

// @Summary Place order
// @Description Runs the simulated payment. 200 on success, 422 on a retryable decline,
// @Description 403 when the checkout is blocked, 409 when a submission is already running.
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.PlaceOrderResponse}
// @Failure 403 {object} models.Response{data=models.PlaceOrderResponse}
// @Failure 409 {object} models.Response{data=models.PlaceOrderResponse}
// @Failure 422 {object} models.Response{data=models.PlaceOrderResponse}
// @Router /checkout/place-order [post]
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	o, ok := ctrl.current(c)
	if !ok {
		return
	}

	result, err := sess.PlaceOrder(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.PlaceOrderResponse{
		Outcome:      string(result.Outcome),
		Message:      result.Message,
		Confirmation: result.Confirmation,
	}

	status := http.StatusOK
	switch result.Outcome {
	case services.OutcomeSucceeded:
		libs.RequestLogger(c).Info("order placed", "order_id", result.Confirmation.OrderID)
	case services.OutcomeDeclined:
		status = http.StatusUnprocessableEntity
	case services.OutcomeBlocked:
		status = http.StatusForbidden
	case services.OutcomeIgnored:
		status = http.StatusConflict
	}
	if result.Outcome != services.OutcomeSucceeded {
		view := o.View()
		resp.Checkout = &view
	}

	c.JSON(status, models.Response{
		Success: result.Outcome == services.OutcomeSucceeded,
		Message: result.Message,
		Data:    resp,
	})
}
