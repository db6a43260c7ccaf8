package handler

import (
	"net/http"
	"time"

	appmw "github.com/avolkov/goshop/internal/middleware"
	"github.com/avolkov/goshop/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type AddReviewRequest struct {
	Text string `json:"text" validate:"required"`
	Rate int    `json:"rate"`
}

func (h *ReviewHandler) Add(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	itemID, idOK := parseIDParam(c, "id")
	if !idOK {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req AddReviewRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	review, err := h.svc.AddReview(c.Request().Context(), itemID, uid, req.Rate, req.Text)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, ReviewResponse{
		ID:        review.ID,
		AuthorID:  review.AuthorID,
		Text:      review.Text,
		Rate:      review.Rate,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	})
}
