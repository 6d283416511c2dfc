package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/mobileauthsvc/internal/http/handlers"
	"github.com/you/mobileauthsvc/internal/http/middleware"
)

func BuildRouter(mh *handlers.MobileAuthHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth/mobile")
	auth.POST("/register/initiate", mh.InitiateRegistration)
	auth.POST("/register/verify", mh.VerifyRegistration)
	auth.POST("/register/complete", mh.CompleteRegistration)
	auth.POST("/login/initiate", mh.InitiateLogin)
	auth.POST("/login/verify", mh.VerifyLogin)
	auth.POST("/refresh", mh.Refresh)

	protected := r.Group("/auth/mobile").Use(jwtmw.WithJWT())
	protected.POST("/logout", mh.Logout)
	protected.POST("/logout-all", mh.LogoutAll)
	protected.GET("/me", mh.Me)

	return r
}
