package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

type ListMeta struct {
	Total    int    `json:"total"`
	Sort     string `json:"sort"`
	Category string `json:"category,omitempty"`
	Query    string `json:"query,omitempty"`
}

type ListResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Meta    ListMeta    `json:"meta"`
}

// PlaceOrderResponse reports the outcome of a submission attempt.
type PlaceOrderResponse struct {
	Outcome      string        `json:"outcome"`
	Message      string        `json:"message,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
	Checkout     *CheckoutView `json:"checkout,omitempty"`
}
