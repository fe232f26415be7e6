package libs

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, pass, from string) (*Mailer, error) {
	if host == "" || user == "" || pass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}, nil
}

type OrderEmail struct {
	OrderID string
	Total   string
}

var orderConfirmationTmpl = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #4f46e5; text-align: center; }
        .order-box { background-color: #eef2ff; padding: 20px; margin: 20px 0; border-radius: 8px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">Lumina</div>
        <h2>Order Confirmation</h2>
        <p>Thank you for your order!</p>
        <div class="order-box">
            <p><strong>Order Number:</strong> {{.OrderID}}</p>
            <p><strong>Total Amount:</strong> ${{.Total}}</p>
        </div>
        <p>This is an automated email. Please do not reply.</p>
    </div>
</body>
</html>`))

// NewOrderConfirmationMessage renders the confirmation email without sending it.
func (m *Mailer) NewOrderConfirmationMessage(to string, data OrderEmail) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s - Lumina", data.OrderID))
	msg.SetBody("text/html", body.String())
	return msg, nil
}

func (m *Mailer) SendOrderConfirmation(to string, data OrderEmail) error {
	msg, err := m.NewOrderConfirmationMessage(to, data)
	if err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
