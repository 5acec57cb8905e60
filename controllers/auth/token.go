package authControllers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/config"
)

// CreateToken issues the bearer token consumed by the Protect
// middleware.
func CreateToken(cfg *config.Config, userID primitive.ObjectID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID.Hex(),
		"iat":    now.Unix(),
		"exp":    now.Add(cfg.JWTExpiry).Unix(),
	})
	return token.SignedString([]byte(cfg.JWTSecret))
}
