package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/models"
)

const currentUserKey = "currentUser"

// UserFinder resolves the token subject to a live user document.
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Protect verifies the bearer token and loads the user it belongs to
// into the request context. Handlers downstream consume the resolved
// identity and never touch tokens themselves.
func Protect(cfg *config.Config, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httperr.Abort(c, httperr.Unauthorized("you are not logged in, please login to get access to this route"))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, httperr.Unauthorized("invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, httperr.Unauthorized("invalid token claims"))
			return
		}
		sub, _ := claims["userId"].(string)
		userID, err := primitive.ObjectIDFromHex(sub)
		if err != nil {
			httperr.Abort(c, httperr.Unauthorized("invalid token claims"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			httperr.Abort(c, httperr.Unauthorized("the user that belongs to this token no longer exists"))
			return
		}

		// Tokens issued before the last password change are dead.
		if user.PasswordChangedAt != nil {
			iat, _ := claims["iat"].(float64)
			if user.PasswordChangedAt.Unix() > int64(iat) {
				httperr.Abort(c, httperr.Unauthorized("user recently changed the password, please login again"))
				return
			}
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// AllowedTo gates a route to the given roles. Must run after Protect.
func AllowedTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		for _, role := range roles {
			if user != nil && user.Role == role {
				c.Next()
				return
			}
		}
		httperr.Abort(c, httperr.Forbidden("you are not allowed to access this route"))
	}
}

// CurrentUser returns the identity resolved by Protect.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
