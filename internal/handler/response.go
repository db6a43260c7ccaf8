package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/avolkov/goshop/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// NewValidator builds the request validator. Field names in validation
// errors come from json tags, so clients see the names they sent.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type errorPayload struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

func NewValidationErrorResponse(fields map[string]string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    "validation_error",
			Message: "invalid input",
			Fields:  fields,
		},
	}
}

// writeServiceError maps service errors onto the HTTP error envelope.
func writeServiceError(c echo.Context, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, NewValidationErrorResponse(verr.Fields))
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("invalid_credentials", err.Error()))
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyFavorite),
		errors.Is(err, service.ErrNotFavorite),
		errors.Is(err, service.ErrSlugTaken):
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
	case errors.Is(err, service.ErrEmptyBasket),
		errors.Is(err, service.ErrInvalidRate),
		errors.Is(err, service.ErrCategoryCycle):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "internal error"))
}

func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := parseUint(c.Param(name))
	return id, err == nil
}

// bindAndValidate decodes the body into req and runs struct validation.
// On failure the error response has already been written; the handler
// should return err as-is.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = "failed " + fe.Tag() + " check"
			}
			return false, c.JSON(http.StatusBadRequest, NewValidationErrorResponse(fields))
		}
		return false, c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid input"))
	}
	return true, nil
}
