package usecase

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

// Access and refresh tokens are signed with distinct secrets so one
// kind can never be replayed as the other. Verification failure is
// uniform: expired, malformed and wrong-secret tokens are all reported
// as invalid.

func (u *authUsecase) signAccessToken(userID string) (string, error) {
	return u.signToken(userID, u.config.JWTSecret, u.config.JWTAccessExpiry)
}

func (u *authUsecase) signRefreshToken(userID string) (string, error) {
	return u.signToken(userID, u.config.JWTRefreshSecret, u.config.JWTRefreshExpiry)
}

func (u *authUsecase) signToken(userID, secret string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", errInvalidToken
	}
	return userID, nil
}
