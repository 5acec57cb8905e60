package authControllers

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hsddev/cake-store/config"
	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/mailer"
	"github.com/hsddev/cake-store/models"
)

const bcryptCost = 12

// UserStore is the slice of the user collection the auth flows need.
type UserStore interface {
	FindOne(ctx context.Context, filter bson.M) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*models.User, error)
	Mutate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error)
}

type SignupInput struct {
	Name            string `json:"name" binding:"required,min=3"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/signup
func Signup(cfg *config.Config, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}
		if input.Password != input.PasswordConfirm {
			httperr.Abort(c, httperr.BadRequest("passwords do not match"))
			return
		}

		ctx := c.Request.Context()
		if _, err := users.FindOne(ctx, bson.M{"email": input.Email}); err == nil {
			httperr.Abort(c, httperr.BadRequest("user already exists"))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to hash password"))
			return
		}

		now := time.Now()
		user := &models.User{
			Name:      input.Name,
			Slug:      slug.Make(input.Name),
			Email:     input.Email,
			Password:  string(hashed),
			Role:      models.RoleUser,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		id, err := users.Create(ctx, user)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		user.ID = id

		token, err := CreateToken(cfg, id)
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to issue token"))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": user, "token": token})
	}
}

// POST /auth/login
func Login(cfg *config.Config, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		user, err := users.FindOne(c.Request.Context(), bson.M{"email": input.Email})
		if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
			httperr.Abort(c, httperr.Unauthorized("incorrect email or password"))
			return
		}

		token, err := CreateToken(cfg, user.ID)
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to issue token"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user, "token": token})
	}
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetCodeInput struct {
	ResetCode string `json:"resetCode" binding:"required"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// POST /auth/forgotPassword
//
// Stores a hashed 6-digit reset code on the user and mails the plain
// code. A failed send rolls the partially-set reset fields back before
// reporting the failure.
func ForgotPassword(users UserStore, mail mailer.Mailer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ForgotPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		ctx := c.Request.Context()
		user, err := users.FindOne(ctx, bson.M{"email": input.Email})
		if err != nil {
			httperr.Abort(c, httperr.NotFound("there is no user with that email address"))
			return
		}

		code, err := generateResetCode()
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to generate reset code"))
			return
		}

		expires := time.Now().Add(10 * time.Minute)
		if _, err := users.UpdateByID(ctx, user.ID, bson.M{
			"passwordResetCode":     hashResetCode(code),
			"passwordResetExpires":  expires,
			"passwordResetVerified": false,
		}); err != nil {
			httperr.Abort(c, err)
			return
		}

		body := fmt.Sprintf(
			"Hi %s,\n\nWe received a request to change your password on your Cake Store account.\n\nPlease enter your reset code: %s\n\n",
			user.Name, code)
		if err := mail.Send(user.Email, "Your password reset code", body); err != nil {
			log.Error("failed to send reset code email", zap.String("user", user.ID.Hex()), zap.Error(err))
			// Compensate: the stored code is unusable without the mail.
			if _, rerr := users.Mutate(ctx, user.ID, bson.M{"$unset": bson.M{
				"passwordResetCode":     "",
				"passwordResetExpires":  "",
				"passwordResetVerified": "",
			}}); rerr != nil {
				log.Error("failed to roll back reset fields", zap.String("user", user.ID.Hex()), zap.Error(rerr))
			}
			httperr.Abort(c, httperr.Internal("there is an error in sending email, please try again later"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "password reset code sent to your email",
		})
	}
}

// POST /auth/verifyResetCode
func VerifyResetCode(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyResetCodeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		ctx := c.Request.Context()
		user, err := users.FindOne(ctx, bson.M{
			"passwordResetCode":    hashResetCode(input.ResetCode),
			"passwordResetExpires": bson.M{"$gt": time.Now()},
		})
		if err != nil {
			httperr.Abort(c, httperr.Unauthorized("reset code invalid or expired"))
			return
		}

		if _, err := users.UpdateByID(ctx, user.ID, bson.M{"passwordResetVerified": true}); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

// POST /auth/resetPassword
func ResetPassword(cfg *config.Config, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}

		ctx := c.Request.Context()
		user, err := users.FindOne(ctx, bson.M{"email": input.Email})
		if err != nil {
			httperr.Abort(c, httperr.NotFound("there is no user with that email address"))
			return
		}
		if user.PasswordResetVerified == nil || !*user.PasswordResetVerified {
			httperr.Abort(c, httperr.BadRequest("reset code not verified"))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to hash password"))
			return
		}

		now := time.Now()
		if _, err := users.Mutate(ctx, user.ID, bson.M{
			"$set": bson.M{
				"password":          string(hashed),
				"passwordChangedAt": now,
				"updatedAt":         now,
			},
			"$unset": bson.M{
				"passwordResetCode":     "",
				"passwordResetExpires":  "",
				"passwordResetVerified": "",
			},
		}); err != nil {
			httperr.Abort(c, err)
			return
		}

		token, err := CreateToken(cfg, user.ID)
		if err != nil {
			httperr.Abort(c, httperr.Internal("failed to issue token"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
