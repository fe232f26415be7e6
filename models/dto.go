package models

type SignInRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
	Name  string `json:"name" form:"name" binding:"required"`
}

type SignUpRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Name     string `json:"name" form:"name" binding:"required"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

type AddCartItemRequest struct {
	ProductID int    `json:"product_id" form:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" form:"quantity"`
	Color     string `json:"color" form:"color"`
	Size      string `json:"size" form:"size"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" form:"quantity"`
}

type ShippingRequest struct {
	FirstName  string `json:"first_name" form:"first_name"`
	LastName   string `json:"last_name" form:"last_name"`
	Address    string `json:"address" form:"address"`
	City       string `json:"city" form:"city"`
	PostalCode string `json:"postal_code" form:"postal_code"`
}

type PaymentRequest struct {
	Method     string `json:"method" form:"method" binding:"required,oneof=card paypal bank"`
	CardNumber string `json:"card_number" form:"card_number"`
	CVC        string `json:"cvc" form:"cvc"`
}

// ProductFilter mirrors the shop page query string.
type ProductFilter struct {
	Query    string   `form:"q"`
	Category string   `form:"category"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	Sort     string   `form:"sort"`
	Flag     string   `form:"filter"`
}
