package handler

import (
	"net/http"

	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type CategoryRequest struct {
	Name     string  `json:"name" validate:"required,max=32"`
	Slug     string  `json:"slug" validate:"required,max=40"`
	ParentID *uint64 `json:"parentId"`
}

type CategoryResponse struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ParentID *uint64 `json:"parentId"`
}

func (h *CategoryHandler) Tree(c echo.Context) error {
	tree, err := h.svc.Tree(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	category, err := h.svc.Create(c.Request().Context(), service.CategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req CategoryRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	category, err := h.svc.Update(c.Request().Context(), id, service.CategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// Delete removes a category and its whole subtree.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(category *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		Slug:     category.Slug,
		ParentID: category.ParentID,
	}
}
