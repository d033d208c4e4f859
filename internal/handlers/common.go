// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/littlethreads/storefront/internal/services"
	"github.com/littlethreads/storefront/internal/utils"
)

// currentUser returns the buyer identity resolved by the auth
// middleware, or nil for anonymous requests.
func currentUser(c *gin.Context) *services.Principal {
	id, ok := c.Get("user_id")
	if !ok {
		return nil
	}
	userID, ok := id.(uint)
	if !ok || userID == 0 {
		return nil
	}
	return &services.Principal{
		ID:    userID,
		Email: c.GetString("user_email"),
		Name:  c.GetString("user_name"),
	}
}

// render executes a template with the session user merged in, so every
// page can show login state without each handler repeating it.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = currentUser(c)
	}
	c.HTML(status, name, data)
}

// serviceError maps domain errors onto plain status responses. Anything
// unrecognized is logged and reported as a 500.
func serviceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product not found")
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order not found")
	case errors.Is(err, services.ErrInvalidOption):
		utils.BadRequestResponse(c, "please choose a valid option")
	case errors.Is(err, services.ErrInsufficientStock):
		utils.BadRequestResponse(c, "not enough stock for the requested quantity")
	case errors.Is(err, services.ErrOrderAlreadyPaid):
		utils.ConflictResponse(c, "order is already paid")
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, "an account with this email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, "invalid email or password")
	case errors.As(err, &validationErrs):
		utils.BadRequestResponse(c, validationMessage(validationErrs))
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
		utils.InternalErrorResponse(c)
	}
}

// validationMessage surfaces the first failed field so the buyer sees
// what to correct.
func validationMessage(errs validator.ValidationErrors) string {
	if fields := utils.GetValidationErrors(errs); len(fields) > 0 {
		return fields[0].Message
	}
	return "invalid request"
}

// redirect is a tiny wrapper so handler bodies read uniformly.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
