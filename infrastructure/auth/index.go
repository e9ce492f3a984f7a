package auth

import (
	"errors"
	"fmt"

	"certschool.io/infrastructure/logger"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken  = errors.New("invalid token used")
	ErrMissingUserID = errors.New("token carries no subject")
)

// SigningKey is the HS256 secret shared with the identity backend. It is
// set once at start-up.
var SigningKey []byte

func GenerateAuthToken(claimsData ClaimsData) (*string, error) {
	claims := jwt.MapClaims{
		"sub": claimsData.UserID,
		"iat": claimsData.IssuedAt,
		"exp": claimsData.ExpiresAt,
	}
	if claimsData.Issuer != "" {
		claims["iss"] = claimsData.Issuer
	}
	if claimsData.Email != nil {
		claims["email"] = *claimsData.Email
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(SigningKey)
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

// DecodeAuthToken verifies an HS256 token and returns its claims. Tokens
// signed with any other algorithm are rejected.
func DecodeAuthToken(tokenString string) (*ClaimsData, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return SigningKey, nil
	})
	if err != nil {
		logger.Warning("error decoding jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrMissingUserID
	}
	data := &ClaimsData{UserID: sub}
	if iss, ok := claims["iss"].(string); ok {
		data.Issuer = iss
	}
	if email, ok := claims["email"].(string); ok {
		data.Email = &email
	}
	if exp, ok := claims["exp"].(float64); ok {
		data.ExpiresAt = int64(exp)
	}
	if iat, ok := claims["iat"].(float64); ok {
		data.IssuedAt = int64(iat)
	}
	return data, nil
}
