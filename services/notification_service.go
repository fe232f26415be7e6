package services

import (
	"context"
	"log/slog"

	"lumina-store/libs"
	"lumina-store/models"
)

// OrderNotifier receives the "proceed to confirmation" signal after a successful order.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, c models.Confirmation)
}

type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) OrderPlaced(ctx context.Context, c models.Confirmation) {
	libs.LoggerFromCtx(ctx, n.log).InfoContext(ctx, "order placed",
		"order_id", c.OrderID,
		"email", c.Email,
		"total", c.Total.StringFixed(2),
	)
}

type ConfirmationMailer interface {
	SendOrderConfirmation(to string, data libs.OrderEmail) error
}

// EmailNotifier mails the buyer; anonymous orders are skipped.
type EmailNotifier struct {
	mailer ConfirmationMailer
	log    *slog.Logger
}

func NewEmailNotifier(mailer ConfirmationMailer, log *slog.Logger) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, log: log}
}

func (n *EmailNotifier) OrderPlaced(ctx context.Context, c models.Confirmation) {
	if c.Email == "" {
		return
	}
	err := n.mailer.SendOrderConfirmation(c.Email, libs.OrderEmail{
		OrderID: c.OrderID,
		Total:   c.Total.StringFixed(2),
	})
	if err != nil {
		n.log.ErrorContext(ctx, "order confirmation email failed", "order_id", c.OrderID, "error", err)
	}
}

type MultiNotifier []OrderNotifier

func (m MultiNotifier) OrderPlaced(ctx context.Context, c models.Confirmation) {
	for _, n := range m {
		n.OrderPlaced(ctx, c)
	}
}
