package services

import (
	"fmt"
	"log"
	"time"

	"pasar/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenPair is the credential pair minted on a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenIssuer mints a token pair bound to an account identity. It is an
// injected capability so tests can substitute it.
type TokenIssuer interface {
	Issue(user *models.User) (TokenPair, error)
}

// JWTTokenIssuer signs HS256 access and refresh tokens.
type JWTTokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTTokenIssuer creates a new JWTTokenIssuer.
func NewJWTTokenIssuer(secret string) *JWTTokenIssuer {
	return &JWTTokenIssuer{
		secret:     []byte(secret),
		accessTTL:  24 * time.Hour,
		refreshTTL: 7 * 24 * time.Hour,
	}
}

// Issue mints an access/refresh pair for the given user.
func (i *JWTTokenIssuer) Issue(user *models.User) (TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(i.accessTTL).Unix(),
		"iat":      now.Unix(),
	})
	accessString, err := access.SignedString(i.secret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"typ":     "refresh",
		"exp":     now.Add(i.refreshTTL).Unix(),
		"iat":     now.Unix(),
	})
	refreshString, err := refresh.SignedString(i.secret)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return TokenPair{Access: accessString, Refresh: refreshString}, nil
}

// Validate parses and validates a JWT token, returning the claims if valid.
func (i *JWTTokenIssuer) Validate(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
