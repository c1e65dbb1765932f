package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"fitmuseapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
}

// credentialErrorMessage maps validator field errors from the credential
// structs onto the API's fixed error strings.
func credentialErrorMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fieldError := range fieldErrors {
			switch fieldError.Tag() {
			case "required":
				return "Username and password are required"
			case "min":
				if fieldError.Field() == "Username" {
					return "Username must be at least 3 characters"
				}
				return "Password must be at least 6 characters"
			case "max":
				if fieldError.Field() == "Username" {
					return "Username must be at most 50 characters"
				}
				return "Password must be at most 200 characters"
			}
		}
	}
	return "Username and password are required"
}

func (controller *AuthController) AuthRoutes(g *echo.Group) {
	g.POST("/signup", controller.SignUp)
	g.POST("/login", controller.Login)
	g.POST("/logout", controller.Logout)
}

func (controller *AuthController) ProtectedAuthRoutes(g *echo.Group) {
	g.GET("/auth/me", controller.Me)
}

func (controller *AuthController) SignUp(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	payload := new(models.SignUpIn)
	if err := c.Bind(payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
	}
	if err := c.Validate(payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": credentialErrorMessage(err)})
	}

	var existing models.UserAccount
	db.Where("username = ?", payload.Username).Limit(1).Find(&existing)
	if existing.ID != 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username already taken"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to sign up"})
	}

	user := models.UserAccount{
		Username: payload.Username,
		Password: string(hash),
		LastIp:   c.RealIP(),
	}
	if err := db.Create(&user).Error; err != nil {
		fmt.Println("Error during signup:", err)
		sentry.CaptureException(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username already taken"})
	}

	refreshToken, err := GenerateRefreshToken(UIntToStr(user.ID))
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to sign up"})
	}
	return c.JSON(http.StatusCreated, models.AuthOut{
		Id:           user.ID,
		Username:     user.Username,
		AccessToken:  GenerateUserToken(UIntToStr(user.ID), c, 72),
		RefreshToken: refreshToken,
	})
}

func (controller *AuthController) Login(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	payload := new(models.LoginIn)
	if err := c.Bind(payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
	}
	if err := c.Validate(payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": credentialErrorMessage(err)})
	}

	var user models.UserAccount
	db.Where("username = ?", payload.Username).Limit(1).Find(&user)
	if user.ID == 0 {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
	}

	user.LastIp = c.RealIP()
	db.Save(&user)

	refreshToken, err := GenerateRefreshToken(UIntToStr(user.ID))
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to log in"})
	}
	return c.JSON(http.StatusOK, models.AuthOut{
		Id:           user.ID,
		Username:     user.Username,
		AccessToken:  GenerateUserToken(UIntToStr(user.ID), c, 72),
		RefreshToken: refreshToken,
	})
}

// Logout exists for client symmetry; bearer tokens carry no server state.
func (controller *AuthController) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (controller *AuthController) Me(c echo.Context) error {
	currentUser := c.Get("currentUser").(models.UserAccount)
	return c.JSON(http.StatusOK, models.UserMeOut{
		Id:       currentUser.ID,
		Username: currentUser.Username,
	})
}
