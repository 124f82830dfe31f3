package models

import "github.com/golang-jwt/jwt/v5"

// RegisterRequest holds the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=255"`
	Role     string `json:"role" validate:"required"`
}

// RegisterResponse acknowledges a new account.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	User    *User  `json:"user,omitempty"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginUser is the authenticated user's public shape.
type LoginUser struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

// LoginResponse reports the outcome of a login. Active is returned rather
// than enforced so the client can route inactive teachers to the payment
// page instead of being locked out.
type LoginResponse struct {
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
	Active  bool      `json:"active"`
	Token   string    `json:"token,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	jwt.RegisteredClaims
}
