package service

import (
	"errors"
	"fmt"
	"time"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService resolves the acting user from a bearer token. Tokens are issued by the external
// identity provider; IssueToken exists for operators and tests sharing the same secret.
type AuthService struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthService(secretKey string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{secret: []byte(secretKey), ttl: ttl}
}

func (s *AuthService) IssueToken(userID int64, role model.Role) (string, error) {
	claims := &model.AppClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign JWT")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// ParseToken verifies an HS256 token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		logger.Log.WithFields(logrus.Fields{"reason": err}).Debug("Rejected bearer token")
		return nil, ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
