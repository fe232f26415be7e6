package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"lumina-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCard = "4242 4242 4242 4242"

type recordingNotifier struct {
	mu  sync.Mutex
	got []models.Confirmation
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, c models.Confirmation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, c)
}

func (n *recordingNotifier) calls() []models.Confirmation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Confirmation(nil), n.got...)
}

type checkoutFixture struct {
	cart     *CartManager
	identity *IdentityHolder
	notifier *recordingNotifier
	o        *CheckoutOrchestrator
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		cart:     NewCartManager(nil, nil),
		identity: NewIdentityHolder(nil, 0, nil),
		notifier: &recordingNotifier{},
	}
	f.cart.AddItem(seedProduct(t, 2), 1, "", "") // 189.00
	f.identity.SignIn("jane@example.com", "Jane Doe")
	f.o = NewCheckoutOrchestrator(f.cart, f.identity, CheckoutOptions{Notifier: f.notifier})
	f.o.newOrderID = func() string { return "LUM-TEST0001" }
	return f
}

// toReview walks the checkout to the review step with the given payment.
func (f *checkoutFixture) toReview(t *testing.T, payment models.PaymentDetails) {
	t.Helper()
	require.NoError(t, f.o.Continue())
	require.NoError(t, f.o.SetPayment(payment))
	require.NoError(t, f.o.Continue())
	require.Equal(t, models.StageReview, f.o.Stage())
}

func card(number, cvc string) models.PaymentDetails {
	return models.PaymentDetails{Method: models.PaymentCard, CardNumber: number, CVC: cvc}
}

func TestCheckout_StartsAtShippingWithPrefilledName(t *testing.T) {
	f := newCheckoutFixture(t)

	v := f.o.View()
	assert.Equal(t, models.StageShipping, v.Stage)
	assert.Equal(t, 1, v.Step)
	assert.Equal(t, models.PaymentCard, v.PaymentMethod)
	assert.Equal(t, "Jane", v.Shipping.FirstName)
	assert.Equal(t, "Doe", v.Shipping.LastName)
	assert.False(t, v.Blocked)
	assert.Equal(t, "189.00", v.Summary.Subtotal.StringFixed(2))
}

func TestCheckout_Navigation(t *testing.T) {
	f := newCheckoutFixture(t)

	assert.ErrorIs(t, f.o.Back(), ErrInvalidTransition)

	require.NoError(t, f.o.Continue())
	assert.Equal(t, models.StagePayment, f.o.Stage())
	assert.ErrorIs(t, f.o.SetShipping(models.ShippingDetails{City: "Late"}), ErrInvalidTransition)

	require.NoError(t, f.o.Back())
	assert.Equal(t, models.StageShipping, f.o.Stage())
	require.NoError(t, f.o.SetShipping(models.ShippingDetails{FirstName: "J", City: "Lisbon"}))

	require.NoError(t, f.o.Continue())
	require.NoError(t, f.o.Continue())
	assert.Equal(t, models.StageReview, f.o.Stage())
	assert.ErrorIs(t, f.o.Continue(), ErrInvalidTransition)

	require.NoError(t, f.o.Back())
	assert.Equal(t, models.StagePayment, f.o.Stage())
	assert.Equal(t, "Lisbon", f.o.View().Shipping.City)
}

func TestCheckout_PlaceOrderOnlyFromReview(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.o.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckout_SetPaymentRejectsUnknownMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	require.NoError(t, f.o.Continue())

	err := f.o.SetPayment(models.PaymentDetails{Method: "crypto"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestCheckout_CardSuccess(t *testing.T) {
	f := newCheckoutFixture(t)
	f.toReview(t, card(validCard, "123"))

	res, err := f.o.PlaceOrder(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, "Order Placed Successfully! Confirmation sent to jane@example.com.", res.Message)
	require.NotNil(t, res.Confirmation)
	assert.Equal(t, "LUM-TEST0001", res.Confirmation.OrderID)
	assert.Equal(t, "jane@example.com", res.Confirmation.Email)
	assert.Equal(t, "204.12", res.Confirmation.Total.StringFixed(2))

	assert.Equal(t, models.StageCompleted, f.o.Stage())
	assert.True(t, f.cart.IsEmpty())
	assert.Empty(t, f.o.Error())

	calls := f.notifier.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "LUM-TEST0001", calls[0].OrderID)

	assert.ErrorIs(t, f.o.Continue(), ErrCheckoutCompleted)
	_, err = f.o.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrCheckoutCompleted)
}

func TestCheckout_CardSeparatorsAccepted(t *testing.T) {
	f := newCheckoutFixture(t)
	f.toReview(t, card("4242-4242-4242-4242", "123"))

	res, err := f.o.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, models.StageCompleted, f.o.Stage())
	assert.True(t, f.cart.IsEmpty())
	assert.Len(t, f.notifier.calls(), 1)
}

func TestCheckout_AnonymousSuccessMessage(t *testing.T) {
	f := newCheckoutFixture(t)
	f.identity.SignOut()
	f.toReview(t, models.PaymentDetails{Method: models.PaymentBankTransfer})

	res, err := f.o.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, "Order Placed Successfully! Confirmation sent to your email.", res.Message)
	assert.Empty(t, res.Confirmation.Email)
}

func TestCheckout_NonCardMethodsIgnoreCardFields(t *testing.T) {
	for _, method := range []models.PaymentMethod{models.PaymentPayPal, models.PaymentBankTransfer} {
		t.Run(string(method), func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.toReview(t, models.PaymentDetails{Method: method, CardNumber: "1", CVC: ""})

			res, err := f.o.PlaceOrder(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeSucceeded, res.Outcome)
			assert.True(t, f.cart.IsEmpty())
		})
	}
}

func TestCheckout_BlockingRules(t *testing.T) {
	cases := []struct {
		name string
		pay  models.PaymentDetails
	}{
		{"short card", card("4242 4242 4242", "123")},
		{"empty card", card("", "123")},
		{"short cvc", card(validCard, "12")},
		{"sentinel card", card("123456789", "123")},
		{"sentinel with spaces", card("1234 56789", "999")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.toReview(t, tc.pay)

			res, err := f.o.PlaceOrder(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeBlocked, res.Outcome)
			assert.Equal(t, SecurityAlertMessage, res.Message)

			assert.True(t, f.o.Blocked())
			assert.Equal(t, SecurityAlertMessage, f.o.Error())
			assert.Equal(t, 1, f.cart.Count())
			assert.Empty(t, f.notifier.calls())
		})
	}
}

func TestCheckout_BlockedIsAbsorbing(t *testing.T) {
	f := newCheckoutFixture(t)
	f.toReview(t, card("1111", "1"))
	_, err := f.o.PlaceOrder(context.Background())
	require.NoError(t, err)
	require.True(t, f.o.Blocked())

	assert.ErrorIs(t, f.o.Continue(), ErrCheckoutBlocked)
	assert.ErrorIs(t, f.o.Back(), ErrCheckoutBlocked)
	assert.ErrorIs(t, f.o.SetShipping(models.ShippingDetails{}), ErrCheckoutBlocked)
	assert.ErrorIs(t, f.o.SetPayment(card(validCard, "123")), ErrCheckoutBlocked)
	_, err = f.o.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrCheckoutBlocked)

	v := f.o.View()
	assert.True(t, v.Blocked)
	assert.Equal(t, models.StageBlocked, v.Stage)
}

func TestCheckout_DeclineIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		pay  models.PaymentDetails
	}{
		{"fifteen digits", card("4242 4242 4242 424", "123")},
		{"seventeen digits", card("4242 4242 4242 4242 4", "123")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.toReview(t, tc.pay)

			res, err := f.o.PlaceOrder(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeDeclined, res.Outcome)
			assert.Equal(t, CardDeclinedMessage, res.Message)
			assert.Equal(t, models.StageReview, f.o.Stage())
			assert.Equal(t, CardDeclinedMessage, f.o.Error())
			assert.False(t, f.o.Blocked())
			assert.Equal(t, 1, f.cart.Count())

			require.NoError(t, f.o.SetPayment(card(validCard, "321")))
			res, err = f.o.PlaceOrder(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeSucceeded, res.Outcome)
			assert.Empty(t, f.o.Error())
		})
	}
}

func TestCheckout_BackFromReviewClearsError(t *testing.T) {
	f := newCheckoutFixture(t)
	f.toReview(t, card("4242424242424", "123"))
	_, err := f.o.PlaceOrder(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, f.o.Error())

	require.NoError(t, f.o.Back())
	assert.Empty(t, f.o.Error())
	assert.Equal(t, models.StagePayment, f.o.Stage())
}

func TestCheckout_DuplicateSubmissionIgnored(t *testing.T) {
	f := newCheckoutFixture(t)
	f.toReview(t, card(validCard, "123"))

	release := make(chan struct{})
	f.o.sleep = func(ctx context.Context, _ time.Duration) error {
		<-release
		return nil
	}

	done := make(chan PlaceOrderResult)
	go func() {
		res, err := f.o.PlaceOrder(context.Background())
		assert.NoError(t, err)
		done <- res
	}()

	require.Eventually(t, f.o.Submitting, time.Second, time.Millisecond)

	dup, err := f.o.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, dup.Outcome)
	assert.ErrorIs(t, f.o.Back(), ErrSubmitting)
	assert.ErrorIs(t, f.o.SetPayment(card("1", "1")), ErrSubmitting)
	assert.True(t, f.o.View().Submitting)

	close(release)
	res := <-done
	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.False(t, f.o.Submitting())
	assert.Len(t, f.notifier.calls(), 1)
}

func TestCheckout_CartEmptiedWhileSubmitting(t *testing.T) {
	f := newCheckoutFixture(t)
	f.toReview(t, card(validCard, "123"))

	release := make(chan struct{})
	f.o.sleep = func(ctx context.Context, _ time.Duration) error {
		<-release
		return nil
	}

	errc := make(chan error)
	go func() {
		_, err := f.o.PlaceOrder(context.Background())
		errc <- err
	}()

	require.Eventually(t, f.o.Submitting, time.Second, time.Millisecond)
	f.cart.Clear()
	close(release)

	assert.ErrorIs(t, <-errc, ErrEmptyCart)
	assert.Equal(t, models.StageReview, f.o.Stage())
	assert.False(t, f.o.Submitting())
	assert.Empty(t, f.notifier.calls())
}

func TestCheckout_CancelledSubmissionLeavesReview(t *testing.T) {
	f := newCheckoutFixture(t)
	f.o.delay = time.Hour
	f.toReview(t, card(validCard, "123"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.o.PlaceOrder(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, models.StageReview, f.o.Stage())
	assert.False(t, f.o.Submitting())
	assert.Equal(t, 1, f.cart.Count())
	assert.Empty(t, f.notifier.calls())
}

func TestCheckout_ViewHidesCardDetails(t *testing.T) {
	f := newCheckoutFixture(t)
	require.NoError(t, f.o.Continue())
	require.NoError(t, f.o.SetPayment(card(validCard, "987")))

	v := f.o.View()
	assert.Equal(t, "4242", v.CardLast4)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "4242 4242")
	assert.NotContains(t, string(raw), "987")
	assert.Contains(t, string(raw), `"stage":"payment"`)
}

func TestNewOrderID(t *testing.T) {
	id := newOrderID()
	assert.Regexp(t, `^LUM-[0-9A-F]{8}$`, id)
}
