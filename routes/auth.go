package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/hsddev/cake-store/controllers/auth"
)

// SetupAuthRoutes registers the public /v1/auth/* endpoints.
func SetupAuthRoutes(v1 *gin.RouterGroup, d Deps) {
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authControllers.Signup(d.Cfg, d.Store.Users))
		auth.POST("/login", authControllers.Login(d.Cfg, d.Store.Users))
		auth.POST("/forgotPassword", authControllers.ForgotPassword(d.Store.Users, d.Mail, d.Log))
		auth.POST("/verifyResetCode", authControllers.VerifyResetCode(d.Store.Users))
		auth.PUT("/resetPassword", authControllers.ResetPassword(d.Cfg, d.Store.Users))
	}
}
