package userControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	authControllers "github.com/hsddev/cake-store/controllers/auth"
	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/controllers/crud"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/middleware"
	"github.com/hsddev/cake-store/models"
)

const bcryptCost = 12

// UserStore is the user-collection surface the profile handlers need.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.User, error)
	Mutate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error)
}

type UpdateUserInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profileImage"`
	Role         *string `json:"role" binding:"omitempty,oneof=user manager admin"`
}

type UpdatePasswordInput struct {
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateMeInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone"`
}

// PrepareCreate fills the bookkeeping fields of an admin-created user;
// wired into the generic create handler.
func PrepareCreate(c *gin.Context, user *models.User) error {
	if user.Name == "" || user.Email == "" {
		return httperr.BadRequest("name and email are required")
	}
	if len(user.Password) < 8 {
		return httperr.BadRequest("password must be at least 8 characters long")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcryptCost)
	if err != nil {
		return httperr.Internal("failed to hash password")
	}
	user.ID = primitive.NilObjectID
	user.Password = string(hashed)
	user.Slug = slug.Make(user.Name)
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.Active = true
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// PUT /users/:id
//
// Deliberately restricted to profile fields: password changes go
// through the dedicated endpoint so passwordChangedAt stays honest.
func UpdateUser(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := crud.ParseID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		patch := bson.M{}
		if input.Name != nil {
			patch["name"] = *input.Name
			patch["slug"] = slug.Make(*input.Name)
		}
		if input.Email != nil {
			patch["email"] = *input.Email
		}
		if input.Phone != nil {
			patch["phone"] = *input.Phone
		}
		if input.ProfileImage != nil {
			patch["profileImage"] = *input.ProfileImage
		}
		if input.Role != nil {
			patch["role"] = *input.Role
		}

		user, err := users.UpdateByID(c.Request.Context(), id, patch)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /users/:id/password
func UpdateUserPassword(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := crud.ParseID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		var input UpdatePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to hash password"))
			return
		}
		user, err := users.UpdateByID(c.Request.Context(), id, bson.M{
			"password":          string(hashed),
			"passwordChangedAt": time.Now(),
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /users/getMe
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": middleware.CurrentUser(c)})
	}
}

// PUT /users/updateMe
func UpdateMe(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateMeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		patch := bson.M{}
		if input.Name != nil {
			patch["name"] = *input.Name
			patch["slug"] = slug.Make(*input.Name)
		}
		if input.Email != nil {
			patch["email"] = *input.Email
		}
		if input.Phone != nil {
			patch["phone"] = *input.Phone
		}

		me := middleware.CurrentUser(c)
		user, err := users.UpdateByID(c.Request.Context(), me.ID, patch)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user})
	}
}

// PUT /users/changeMyPassword
func ChangeMyPassword(cfg *config.Config, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdatePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to hash password"))
			return
		}

		me := middleware.CurrentUser(c)
		user, err := users.UpdateByID(c.Request.Context(), me.ID, bson.M{
			"password":          string(hashed),
			"passwordChangedAt": time.Now(),
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		token, err := authControllers.CreateToken(cfg, me.ID)
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to issue token"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user, "token": token})
	}
}

// DELETE /users/deleteMe
func DeactivateMe(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		if _, err := users.UpdateByID(c.Request.Context(), me.ID, bson.M{"active": false}); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
