package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avolkov/goshop/internal/catalog"
	appmw "github.com/avolkov/goshop/internal/middleware"
	"github.com/avolkov/goshop/internal/model"
	"github.com/avolkov/goshop/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type ItemResponse struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	SalesmanID  uint64 `json:"salesmanId"`
	CreatedAt   string `json:"createdAt"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
}

type ReviewResponse struct {
	ID        uint64 `json:"id"`
	AuthorID  uint64 `json:"authorId"`
	Text      string `json:"text"`
	Rate      int    `json:"rate"`
	CreatedAt string `json:"createdAt"`
}

type ItemDetailResponse struct {
	ItemResponse
	Images        []string         `json:"images"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRate   *float64         `json:"averageRate"`
	ReviewCount   int64            `json:"reviewCount"`
	PurchaseCount int64            `json:"purchaseCount"`
}

type CreateItemRequest struct {
	Title       string   `json:"title" validate:"required,max=124"`
	Description string   `json:"description" validate:"required"`
	PriceCents  int64    `json:"priceCents" validate:"min=0"`
	Categories  []string `json:"categories" validate:"required,min=1"`
	ImageURLs   []string `json:"imageUrls"`
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func listingQuery(c echo.Context) (catalog.FilterSpec, int) {
	spec := catalog.ParseFilterSpec(c.QueryParams())
	page, _ := strconv.Atoi(c.QueryParam("page"))
	return spec, page
}

func (h *CatalogHandler) List(c echo.Context) error {
	spec, page := listingQuery(c)
	result, err := h.svc.List(c.Request().Context(), spec, page)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemListResponse(result))
}

func (h *CatalogHandler) ListByCategory(c echo.Context) error {
	spec, page := listingQuery(c)
	result, err := h.svc.ListByCategory(c.Request().Context(), c.Param("slug"), spec, page)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemListResponse(result))
}

func (h *CatalogHandler) Search(c echo.Context) error {
	spec, page := listingQuery(c)
	result, err := h.svc.Search(c.Request().Context(), c.QueryParam("s"), spec, page)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemListResponse(result))
}

func (h *CatalogHandler) Favorites(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	spec, page := listingQuery(c)
	result, err := h.svc.Favorites(c.Request().Context(), uid, spec, page)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemListResponse(result))
}

func (h *CatalogHandler) Get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	detail, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemDetailResponse(detail))
}

func (h *CatalogHandler) Create(c echo.Context) error {
	uid, ok := appmw.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "login required"))
	}
	var req CreateItemRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	item, err := h.svc.Create(c.Request().Context(), service.CreateItemInput{
		Title:         req.Title,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		SalesmanID:    uid,
		CategorySlugs: req.Categories,
		ImageURLs:     req.ImageURLs,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

func toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		SalesmanID:  item.SalesmanID,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

func toItemListResponse(page *service.ItemPage) ItemListResponse {
	resp := ItemListResponse{
		Items: make([]ItemResponse, 0, len(page.Items)),
		Total: page.Total,
		Page:  page.Page,
	}
	for i := range page.Items {
		resp.Items = append(resp.Items, toItemResponse(&page.Items[i]))
	}
	return resp
}

func toItemDetailResponse(detail *service.ItemDetail) ItemDetailResponse {
	resp := ItemDetailResponse{
		ItemResponse:  toItemResponse(&detail.Item),
		Images:        make([]string, 0, len(detail.Images)),
		Reviews:       make([]ReviewResponse, 0, len(detail.Reviews)),
		AverageRate:   detail.AverageRate,
		ReviewCount:   detail.ReviewCount,
		PurchaseCount: detail.PurchaseCount,
	}
	for _, img := range detail.Images {
		resp.Images = append(resp.Images, img.URL)
	}
	for _, rv := range detail.Reviews {
		resp.Reviews = append(resp.Reviews, ReviewResponse{
			ID:        rv.ID,
			AuthorID:  rv.AuthorID,
			Text:      rv.Text,
			Rate:      rv.Rate,
			CreatedAt: rv.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
