package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"lumina-store/libs"
	"lumina-store/models"
	"lumina-store/utils"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition    = errors.New("invalid checkout transition")
	ErrCheckoutBlocked      = errors.New("checkout is blocked")
	ErrCheckoutCompleted    = errors.New("checkout already completed")
	ErrSubmitting           = errors.New("order submission in progress")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

const (
	SecurityAlertMessage = "Security Alert: Suspicious payment details detected. This checkout session has been locked."
	CardDeclinedMessage  = "Transaction Declined: Invalid Credit Card Number."

	cardSentinel       = "123456789"
	minCardDigits      = 13
	requiredCardDigits = 16
	minCVCDigits       = 3
)

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeDeclined  Outcome = "declined"
	OutcomeBlocked   Outcome = "blocked"
	OutcomeIgnored   Outcome = "ignored"
)

type PlaceOrderResult struct {
	Outcome      Outcome
	Message      string
	Confirmation *models.Confirmation
}

type CheckoutOptions struct {
	ProcessingDelay time.Duration
	Notifier        OrderNotifier
	Logger          *slog.Logger
}

// CheckoutOrchestrator drives one checkout attempt: Shipping -> Payment -> Review, then either
// Completed or the absorbing Blocked stage. A new attempt needs a new orchestrator.
type CheckoutOrchestrator struct {
	mu         sync.Mutex
	stage      models.CheckoutStage
	shipping   models.ShippingDetails
	draft      models.PaymentDetails
	captured   models.PaymentDetails
	submitting bool
	errMsg     string

	cart     *CartManager
	identity *IdentityHolder
	notifier OrderNotifier
	delay    time.Duration
	log      *slog.Logger

	sleep      func(ctx context.Context, d time.Duration) error
	newOrderID func() string
	now        func() time.Time
}

func NewCheckoutOrchestrator(cart *CartManager, identity *IdentityHolder, opts CheckoutOptions) *CheckoutOrchestrator {
	log := opts.Logger
	if log == nil {
		log = libs.NopLogger()
	}
	o := &CheckoutOrchestrator{
		stage:      models.StageShipping,
		draft:      models.PaymentDetails{Method: models.PaymentCard},
		cart:       cart,
		identity:   identity,
		notifier:   opts.Notifier,
		delay:      opts.ProcessingDelay,
		log:        log,
		sleep:      sleepCtx,
		newOrderID: newOrderID,
		now:        time.Now,
	}
	o.captured = o.draft
	if user, ok := identity.Current(); ok {
		first, last, _ := strings.Cut(user.Name, " ")
		o.shipping.FirstName = first
		o.shipping.LastName = last
	}
	return o
}

func newOrderID() string {
	return "LUM-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// guard must be called with mu held; it rejects every transition out of terminal stages.
func (o *CheckoutOrchestrator) guard() error {
	switch o.stage {
	case models.StageBlocked:
		return ErrCheckoutBlocked
	case models.StageCompleted:
		return ErrCheckoutCompleted
	}
	return nil
}

// Continue advances Shipping -> Payment and Payment -> Review. No field is validated.
func (o *CheckoutOrchestrator) Continue() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.guard(); err != nil {
		return err
	}
	switch o.stage {
	case models.StageShipping:
		o.stage = models.StagePayment
	case models.StagePayment:
		o.captured = o.draft
		o.stage = models.StageReview
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Back moves Payment -> Shipping and Review -> Payment; the latter is refused while submitting.
func (o *CheckoutOrchestrator) Back() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.guard(); err != nil {
		return err
	}
	switch o.stage {
	case models.StagePayment:
		o.stage = models.StageShipping
	case models.StageReview:
		if o.submitting {
			return ErrSubmitting
		}
		o.errMsg = ""
		o.stage = models.StagePayment
	default:
		return ErrInvalidTransition
	}
	return nil
}

func (o *CheckoutOrchestrator) SetShipping(details models.ShippingDetails) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.guard(); err != nil {
		return err
	}
	if o.stage != models.StageShipping {
		return ErrInvalidTransition
	}
	o.shipping = details
	return nil
}

// SetPayment records the payment selection. In Review the captured details are replaced too,
// so a declined card can be corrected and resubmitted.
func (o *CheckoutOrchestrator) SetPayment(details models.PaymentDetails) error {
	if !details.Method.Valid() {
		return ErrInvalidPaymentMethod
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.guard(); err != nil {
		return err
	}
	switch o.stage {
	case models.StagePayment:
		o.draft = details
	case models.StageReview:
		if o.submitting {
			return ErrSubmitting
		}
		o.draft = details
		o.captured = details
	default:
		return ErrInvalidTransition
	}
	return nil
}

// PlaceOrder submits the captured payment. A trigger while a submission is in flight returns
// OutcomeIgnored without changing anything. Cancelling ctx during processing aborts the attempt
// and leaves the checkout in Review.
func (o *CheckoutOrchestrator) PlaceOrder(ctx context.Context) (PlaceOrderResult, error) {
	o.mu.Lock()
	if err := o.guard(); err != nil {
		o.mu.Unlock()
		return PlaceOrderResult{}, err
	}
	if o.stage != models.StageReview {
		o.mu.Unlock()
		return PlaceOrderResult{}, ErrInvalidTransition
	}
	if o.submitting {
		o.mu.Unlock()
		return PlaceOrderResult{Outcome: OutcomeIgnored, Message: ErrSubmitting.Error()}, nil
	}
	o.submitting = true
	o.errMsg = ""
	details := o.captured
	o.mu.Unlock()

	err := o.sleep(ctx, o.delay)

	o.mu.Lock()
	o.submitting = false
	if err != nil {
		o.mu.Unlock()
		o.log.WarnContext(ctx, "order submission aborted", "error", err)
		return PlaceOrderResult{}, err
	}
	// The cart routes stay open while submitting.
	if o.cart.IsEmpty() {
		o.mu.Unlock()
		o.log.InfoContext(ctx, "order submission dropped, cart emptied while processing")
		return PlaceOrderResult{}, ErrEmptyCart
	}

	result := o.decide(details)
	libs.CheckoutSubmissions.WithLabelValues(string(result.Outcome), string(details.Method)).Inc()

	switch result.Outcome {
	case OutcomeBlocked:
		o.stage = models.StageBlocked
		o.errMsg = result.Message
		o.mu.Unlock()
		o.log.WarnContext(ctx, "checkout blocked", "method", details.Method)
		return result, nil
	case OutcomeDeclined:
		o.errMsg = result.Message
		o.mu.Unlock()
		o.log.InfoContext(ctx, "payment declined", "method", details.Method)
		return result, nil
	}

	summary := o.cart.Summary()
	o.cart.Clear()
	email := ""
	if user, ok := o.identity.Current(); ok {
		email = user.Email
	}
	conf := models.Confirmation{
		OrderID:  o.newOrderID(),
		Email:    email,
		Total:    summary.Total,
		PlacedAt: o.now().UTC(),
	}
	o.stage = models.StageCompleted
	o.mu.Unlock()

	result.Confirmation = &conf
	result.Message = confirmationMessage(email)
	if o.notifier != nil {
		o.notifier.OrderPlaced(context.WithoutCancel(ctx), conf)
	}
	return result, nil
}

// decide applies the simulated fraud check. Only card payments consult the card fields.
func (o *CheckoutOrchestrator) decide(details models.PaymentDetails) PlaceOrderResult {
	if details.Method != models.PaymentCard {
		return PlaceOrderResult{Outcome: OutcomeSucceeded}
	}
	card := utils.StripWhitespace(details.CardNumber)
	cvc := utils.StripWhitespace(details.CVC)

	if utils.DigitCount(card) < minCardDigits || utils.DigitCount(cvc) < minCVCDigits || card == cardSentinel {
		return PlaceOrderResult{Outcome: OutcomeBlocked, Message: SecurityAlertMessage}
	}
	if utils.DigitCount(card) != requiredCardDigits {
		return PlaceOrderResult{Outcome: OutcomeDeclined, Message: CardDeclinedMessage}
	}
	return PlaceOrderResult{Outcome: OutcomeSucceeded}
}

func confirmationMessage(email string) string {
	if email == "" {
		email = "your email"
	}
	return "Order Placed Successfully! Confirmation sent to " + email + "."
}

func (o *CheckoutOrchestrator) Stage() models.CheckoutStage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stage
}

func (o *CheckoutOrchestrator) Blocked() bool {
	return o.Stage() == models.StageBlocked
}

func (o *CheckoutOrchestrator) Submitting() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.submitting
}

// Error is the current user-facing message, empty when none.
func (o *CheckoutOrchestrator) Error() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMsg
}

func (o *CheckoutOrchestrator) View() models.CheckoutView {
	o.mu.Lock()
	v := models.CheckoutView{
		Stage:         o.stage,
		Step:          stepOf(o.stage),
		PaymentMethod: o.draft.Method,
		Shipping:      o.shipping,
		Blocked:       o.stage == models.StageBlocked,
		Submitting:    o.submitting,
		Error:         o.errMsg,
	}
	if o.draft.Method == models.PaymentCard {
		v.CardLast4 = utils.Last4(o.draft.CardNumber)
	}
	o.mu.Unlock()

	v.Summary = o.cart.Summary()
	return v
}

func stepOf(s models.CheckoutStage) int {
	switch s {
	case models.StageShipping:
		return 1
	case models.StagePayment:
		return 2
	}
	return 3
}
