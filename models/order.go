package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentPayPal, PaymentBankTransfer:
		return true
	}
	return false
}

type CheckoutStage int

const (
	StageShipping CheckoutStage = iota + 1
	StagePayment
	StageReview
	StageBlocked
	StageCompleted
)

func (s CheckoutStage) String() string {
	switch s {
	case StageShipping:
		return "shipping"
	case StagePayment:
		return "payment"
	case StageReview:
		return "review"
	case StageBlocked:
		return "blocked"
	case StageCompleted:
		return "completed"
	}
	return "unknown"
}

func (s CheckoutStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type ShippingDetails struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type PaymentDetails struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"-"`
	CVC        string        `json:"-"`
}

// CheckoutView is the client-facing snapshot of a checkout; card fields are never exposed.
type CheckoutView struct {
	Stage         CheckoutStage   `json:"stage"`
	Step          int             `json:"step"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CardLast4     string          `json:"card_last4,omitempty"`
	Shipping      ShippingDetails `json:"shipping"`
	Blocked       bool            `json:"blocked"`
	Submitting    bool            `json:"submitting"`
	Error         string          `json:"error,omitempty"`
	Summary       CartSummary     `json:"summary"`
}

type Confirmation struct {
	OrderID  string          `json:"order_id"`
	Email    string          `json:"email"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}
