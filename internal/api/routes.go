package api

import (
	"regexp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"homebase/server/internal/models"
)

var indianPhone = regexp.MustCompile(`^(?:\+91|91|0)?[6-9]\d{9}$`)

// SetupRoutes wires all endpoints onto the router. Routes without a
// RequireRoles middleware are public.
func SetupRoutes(router *gin.Engine, handler *Handler, logger *logrus.Logger) {
	registerValidators()

	router.Use(RequestLogger(logger))
	router.Use(cors.Default())

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup/:userType", handler.SignUp)
		authGroup.POST("/signin", handler.SignIn)
		authGroup.POST("/key", handler.GenerateProductKey)
		authGroup.GET("/me", handler.Me)
	}

	home := router.Group("/home")
	{
		home.GET("", handler.GetHomes)
		home.GET("/:id", handler.GetHomeByID)
		home.POST("", handler.RequireRoles(models.RoleRealtor), handler.CreateHome)
		home.PUT("/:id", handler.RequireRoles(models.RoleRealtor), handler.UpdateHome)
		home.DELETE("/:id", handler.RequireRoles(models.RoleRealtor), handler.DeleteHome)
		home.POST("/:id/inquire", handler.RequireRoles(models.RoleBuyer), handler.InquireHome)
		home.GET("/:id/messages", handler.RequireRoles(models.RoleRealtor), handler.GetHomeMessages)
	}
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
			return indianPhone.MatchString(fl.Field().String())
		})
	}
}
