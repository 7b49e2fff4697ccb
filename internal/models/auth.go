package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload carried by the auth cookie or bearer token.
type JWTClaims struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	jwt.RegisteredClaims
}
