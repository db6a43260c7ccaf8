package handler

import (
	"net/http"

	appmw "github.com/avolkov/goshop/internal/middleware"
	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/service"
	"github.com/labstack/echo/v4"
)

type BasketHandler struct {
	svc service.BasketService
}

func NewBasketHandler(svc service.BasketService) *BasketHandler {
	return &BasketHandler{svc: svc}
}

type BasketResponse struct {
	Items      []ItemResponse `json:"items"`
	TotalCents int64          `json:"totalCents"`
}

func (h *BasketHandler) Get(c echo.Context) error {
	items, err := h.svc.Materialize(c.Request().Context(), appmw.SessionID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBasketResponse(items))
}

func (h *BasketHandler) Add(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Add(c.Request().Context(), appmw.SessionID(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BasketHandler) Remove(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Remove(c.Request().Context(), appmw.SessionID(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Contains reports whether the item sits in the caller's basket.
func (h *BasketHandler) Contains(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	in, err := h.svc.Contains(c.Request().Context(), appmw.SessionID(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"inBasket": in})
}

func toBasketResponse(items []model.Item) BasketResponse {
	resp := BasketResponse{Items: make([]ItemResponse, 0, len(items))}
	for i := range items {
		resp.Items = append(resp.Items, toItemResponse(&items[i]))
		resp.TotalCents += items[i].PriceCents
	}
	return resp
}
