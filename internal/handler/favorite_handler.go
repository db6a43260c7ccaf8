package handler

import (
	"net/http"

	appmw "github.com/avolkov/goshop/internal/middleware"
	"github.com/avolkov/goshop/internal/service"
	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	svc service.FavoriteService
}

func NewFavoriteHandler(svc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	itemID, idOK := parseIDParam(c, "id")
	if !idOK {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Add(c.Request().Context(), uid, itemID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	itemID, idOK := parseIDParam(c, "id")
	if !idOK {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Remove(c.Request().Context(), uid, itemID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FavoriteHandler) Contains(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	itemID, idOK := parseIDParam(c, "id")
	if !idOK {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	fav, err := h.svc.Contains(c.Request().Context(), uid, itemID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"favorite": fav})
}
