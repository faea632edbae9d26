package handler

import (
	"context"
	"net/http"
	"strings"

	"go-bank-ledger/common"
	"go-bank-ledger/model"
	"go-bank-ledger/service"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

// AuthMiddleware resolves the acting user from the bearer token and stores it on the context.
func AuthMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil).Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil).Send(w)
				return
			}

			claims, err := auth.ParseToken(headerParts[1])
			if err != nil {
				common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleKey).(string)

		if !ok || model.Role(role) != model.RoleAdmin {
			common.NewAppError(http.StatusForbidden, "Access denied. Admin privileges required.", nil).Send(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// caller is the identity AuthMiddleware put on the request.
type caller struct {
	userID int64
	role   model.Role
}

func (c caller) isPrivileged() bool {
	return c.role == model.RoleAdmin
}

func callerFromRequest(r *http.Request) (caller, *common.AppError) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	if !ok {
		return caller{}, common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}
	role, ok := r.Context().Value(UserRoleKey).(string)
	if !ok {
		return caller{}, common.NewAppError(http.StatusUnauthorized, "Invalid user role in token", nil)
	}
	return caller{userID: userID, role: model.Role(role)}, nil
}
