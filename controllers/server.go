package controllers

import (
	"context"
	"log"
	"net/http"
	"os"

	"fitmuseapi/services"

	"github.com/go-playground/validator"
	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		// keep the typed field errors reachable for handlers that map
		// them onto fixed API messages
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

func SetupServer(
	db *gorm.DB,
	llmService services.LLMServiceProvider,
	awsService services.AWSServiceProvider,
	asynqClient *asynq.Client,
	urlCache services.URLCacheServiceProvider,
) *echo.Echo {

	err := awsService.InitPresignClient(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize AWS provider: S3")
	}

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			c.Set("__asynqclient", asynqClient)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authController := AuthController{}
	authGroup := e.Group("/api/auth")
	authController.AuthRoutes(authGroup)

	// missing tokens answer 401 like invalid ones, not the default 400
	apiGroup := e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(os.Getenv("JWT_SECRET")),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.ErrUnauthorized
		},
	}))
	apiGroup.Use(UserMiddleware)
	authController.ProtectedAuthRoutes(apiGroup)

	stylingController := StylingController{LLM: llmService}
	stylingController.StylingRoutes(apiGroup)

	outfitsController := OutfitsController{AWSService: awsService, URLCache: urlCache}
	outfitsController.OutfitRoutes(apiGroup)

	return e
}
