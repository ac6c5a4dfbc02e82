package types

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// User is the authenticated admin identity returned to clients.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse represents the login response. Tokens travel in cookies, not the body.
type LoginResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// MeResponse is returned by the session lookup endpoint.
type MeResponse struct {
	User *User `json:"user"`
}
