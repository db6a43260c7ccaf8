package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avolkov/goshop/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func TestWriteServiceErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound, "not_found"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"email taken", service.ErrEmailTaken, http.StatusConflict, "conflict"},
		{"already favorite", service.ErrAlreadyFavorite, http.StatusConflict, "conflict"},
		{"not favorite", service.ErrNotFavorite, http.StatusConflict, "conflict"},
		{"slug taken", service.ErrSlugTaken, http.StatusConflict, "conflict"},
		{"empty basket", service.ErrEmptyBasket, http.StatusBadRequest, "bad_request"},
		{"bad rate", service.ErrInvalidRate, http.StatusBadRequest, "bad_request"},
		{"category cycle", service.ErrCategoryCycle, http.StatusBadRequest, "bad_request"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := writeServiceError(c, tt.err); err != nil {
				t.Fatalf("writeServiceError returned %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad body: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestWriteServiceErrorValidationFields(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	verr := &service.ValidationError{Fields: map[string]string{
		"email":       "email is required",
		"is_delivery": "delivery flag is required",
	}}
	if err := writeServiceError(c, verr); err != nil {
		t.Fatalf("writeServiceError returned %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("code = %q, want validation_error", body.Error.Code)
	}
	if body.Error.Fields["email"] != "email is required" {
		t.Fatalf("fields = %v, missing email message", body.Error.Fields)
	}
	if body.Error.Fields["is_delivery"] != "delivery flag is required" {
		t.Fatalf("fields = %v, missing is_delivery message", body.Error.Fields)
	}
}

func TestBindAndValidateUsesJSONFieldNames(t *testing.T) {
	e := echo.New()
	e.Validator = &echoValidator{validate: NewValidator()}
	payload := `{"title":"Hat","description":"d","priceCents":-5,"imageUrls":[]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var body CreateItemRequest
	ok, err := bindAndValidate(c, &body)
	if ok {
		t.Fatal("invalid payload accepted")
	}
	if err != nil {
		t.Fatalf("bindAndValidate returned %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	// Keys must be the json names the client sent, not Go field names.
	if _, found := resp.Error.Fields["priceCents"]; !found {
		t.Fatalf("fields = %v, want priceCents key", resp.Error.Fields)
	}
	if _, found := resp.Error.Fields["categories"]; !found {
		t.Fatalf("fields = %v, want categories key", resp.Error.Fields)
	}
	if _, found := resp.Error.Fields["pricecents"]; found {
		t.Fatalf("fields = %v, lowercased Go field name leaked", resp.Error.Fields)
	}
}
