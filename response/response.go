package response

import (
	"net/http"

	apperrors "pousada/errors"
	"pousada/services/logger"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every error response
type ErrorBody struct {
	Error string `json:"error"`
}

type DeletedBody struct {
	Success bool `json:"success"`
}

var errorLogger logger.Logger = logger.NewDefaultLogger(logger.InfoLevel)

// SetLogger replaces the logger internal errors are written to
func SetLogger(l logger.Logger) {
	if l != nil {
		errorLogger = l
	}
}

// Success writes data with 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Deleted acknowledges a delete
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, DeletedBody{Success: true})
}

// Error renders err by its application code; internal details are only logged
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.Internal("internal server error", err)
	}
	status := apperrors.HTTPStatus(appErr.Code)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		errorLogger.Error("request %s %s (%s): %v", c.Request.Method, c.Request.URL.Path, c.GetString("requestId"), err)
		message = "internal server error"
	}
	c.JSON(status, ErrorBody{Error: message})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorBody{Error: "unauthorized"})
}

func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, ErrorBody{Error: "forbidden"})
}
