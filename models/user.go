package models

// Identity is the mock storefront identity. It carries no credential.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type IdentityView struct {
	Authenticated bool      `json:"authenticated"`
	User          *Identity `json:"user,omitempty"`
}
