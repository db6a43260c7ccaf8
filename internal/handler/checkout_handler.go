package handler

import (
	"net/http"
	"time"

	appmw "github.com/avolkov/goshop/internal/middleware"
	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/service"
	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	svc service.CheckoutService
}

func NewCheckoutHandler(svc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type CheckoutRequest struct {
	IsDelivery *bool  `json:"isDelivery"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
}

type PurchaseResponse struct {
	ID              uint64  `json:"id"`
	UserID          *uint64 `json:"userId"`
	IsDelivery      bool    `json:"isDelivery"`
	TotalPriceCents *int64  `json:"totalPriceCents"`
	Email           string  `json:"email"`
	CreatedAt       string  `json:"createdAt"`
}

// Checkout works for both logged-in and guest sessions; the identity is
// attached when a valid token accompanies the request.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}

	var userID *uint64
	if uid, ok := appmw.UserID(c); ok {
		userID = &uid
	}

	purchase, err := h.svc.Checkout(c.Request().Context(), appmw.SessionID(c), userID, service.ShippingForm{
		IsDelivery: req.IsDelivery,
		Email:      req.Email,
		Phone:      req.Phone,
		Country:    req.Country,
		City:       req.City,
		Street:     req.Street,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toPurchaseResponse(purchase))
}

func toPurchaseResponse(p *model.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		IsDelivery:      p.IsDelivery,
		TotalPriceCents: p.TotalPriceCents,
		Email:           p.Email,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}
