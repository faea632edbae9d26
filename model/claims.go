package model

import "github.com/golang-jwt/jwt/v5"

// Role values carried in access tokens.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type AppClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsPrivileged reports whether the token holder may act on accounts they do not own.
func (c *AppClaims) IsPrivileged() bool {
	return Role(c.Role) == RoleAdmin
}
