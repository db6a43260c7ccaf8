package handler

import (
	"net/http"

	appmw "github.com/avolkov/goshop/internal/middleware"
	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"isStaff"`
}

type ProfileRequest struct {
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Phone      string `json:"phone"`
}

type ProfileResponse struct {
	FirstName   string `json:"firstName"`
	SecondName  string `json:"secondName"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	Phone       string `json:"phone"`
	IsConfirmed bool   `json:"isConfirmed"`
}

type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PurchaseHistoryEntry struct {
	Purchase PurchaseResponse `json:"purchase"`
	Items    []ItemResponse   `json:"items"`
}

func (h *UserHandler) SignUp(c echo.Context) error {
	var req CredentialsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	user, token, err := h.svc.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
}

func (h *UserHandler) SignIn(c echo.Context) error {
	var req CredentialsRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	user, token, err := h.svc.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
}

func (h *UserHandler) Confirm(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "token is required"))
	}
	if err := h.svc.ConfirmEmail(c.Request().Context(), token); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "confirmed"})
}

func (h *UserHandler) Profile(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	profile, err := h.svc.Profile(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	profile, err := h.svc.UpdateProfile(c.Request().Context(), uid, service.ProfileInput{
		FirstName:  req.FirstName,
		SecondName: req.SecondName,
		Country:    req.Country,
		City:       req.City,
		Street:     req.Street,
		Phone:      req.Phone,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *UserHandler) ChangeEmail(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	var req ChangeEmailRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	user, err := h.svc.ChangeEmail(c.Request().Context(), uid, req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Purchases(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	history, err := h.svc.Purchases(c.Request().Context(), uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]PurchaseHistoryEntry, 0, len(history))
	for i := range history {
		entry := PurchaseHistoryEntry{
			Purchase: toPurchaseResponse(&history[i].Purchase),
			Items:    make([]ItemResponse, 0, len(history[i].Items)),
		}
		for j := range history[i].Items {
			entry.Items = append(entry.Items, toItemResponse(&history[i].Items[j]))
		}
		out = append(out, entry)
	}
	return c.JSON(http.StatusOK, out)
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, IsStaff: user.IsStaff}
}

func toProfileResponse(p *model.UserProfile) ProfileResponse {
	return ProfileResponse{
		FirstName:   p.FirstName,
		SecondName:  p.SecondName,
		Country:     p.Country,
		City:        p.City,
		Street:      p.Street,
		Phone:       p.Phone,
		IsConfirmed: p.IsConfirmed,
	}
}
