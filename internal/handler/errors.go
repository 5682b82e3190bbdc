package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bowling-center/internal/apperr"
	"github.com/iliyamo/bowling-center/internal/model"
)

// ErrorStyle selects the JSON shape of error bodies.
type ErrorStyle int

const (
	// StyleStandard renders {message, timestamp, path}.
	StyleStandard ErrorStyle = iota
	// StyleTransaction renders {httpStatus, path, message}.
	StyleTransaction
)

// ErrorBody is the error shape of the resource services and the gateway.
type ErrorBody struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// TransactionErrorBody is the error shape of transaction-service.
type TransactionErrorBody struct {
	HTTPStatus string `json:"httpStatus"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

// classify maps err onto a status code and a client-facing message.
// Unclassified errors are logged and hidden behind a fixed message.
func classify(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound, err.Error()
	case apperr.KindInvalidInput:
		return http.StatusUnprocessableEntity, err.Error()
	case apperr.KindInvalidTransactionStatus:
		return http.StatusBadRequest, err.Error()
	}

	var enumErr *model.EnumError
	if errors.As(err, &enumErr) {
		return http.StatusBadRequest, enumErr.Message
	}
	var fieldErr *model.FieldError
	if errors.As(err, &fieldErr) {
		return http.StatusBadRequest, fieldErr.Error()
	}
	// Binder and framework rejections (malformed JSON, missing content
	// type, oversized body) keep their client status.
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code >= 400 && he.Code < 500 {
		if he.Code == http.StatusBadRequest {
			return http.StatusBadRequest, "Invalid request body."
		}
		return he.Code, http.StatusText(he.Code)
	}

	log.Printf("handler: unexpected error: %v", err)
	return http.StatusInternalServerError, "Internal server error"
}

// writeError renders err in the requested style.
func writeError(c echo.Context, style ErrorStyle, err error) error {
	code, msg := classify(err)
	path := c.Request().URL.Path
	if style == StyleTransaction {
		return c.JSON(code, TransactionErrorBody{HTTPStatus: reasonCode(code), Path: path, Message: msg})
	}
	return c.JSON(code, ErrorBody{Message: msg, Timestamp: time.Now().UTC().Format(time.RFC3339), Path: path})
}

// reasonCode turns 404 into "NOT_FOUND".
func reasonCode(code int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
}
