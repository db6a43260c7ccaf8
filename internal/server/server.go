package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/avolkov/goshop/internal/auth"
	"github.com/avolkov/goshop/internal/basket"
	"github.com/avolkov/goshop/internal/config"
	"github.com/avolkov/goshop/internal/handler"
	appmw "github.com/avolkov/goshop/internal/middleware"
	"github.com/avolkov/goshop/internal/repository"
	"github.com/avolkov/goshop/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mail service.Mailer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: handler.NewValidator()}
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			return u.Scheme == "http" || u.Scheme == "https", nil
		},
	}))
	e.Use(appmw.Session)

	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	userRepo := repository.NewUserRepository(db)

	basketStore := basket.NewStore(rdb)
	confirmStore := auth.NewConfirmStore(rdb)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	catalogSvc := service.NewCatalogService(itemRepo, categoryRepo, reviewRepo, purchaseRepo)
	basketSvc := service.NewBasketService(basketStore, itemRepo)
	checkoutSvc := service.NewCheckoutService(basketStore, itemRepo, purchaseRepo)
	reviewSvc := service.NewReviewService(reviewRepo, itemRepo)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, itemRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	userSvc := service.NewUserService(userRepo, purchaseRepo, tokens, confirmStore, mail, cfg.BaseURL)

	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	basketHandler := handler.NewBasketHandler(basketSvc)
	checkoutHandler := handler.NewCheckoutHandler(checkoutSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	userHandler := handler.NewUserHandler(userSvc)

	authMw := appmw.NewAuthMiddleware(tokens)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")

	api.POST("/auth/signup", userHandler.SignUp)
	api.POST("/auth/signin", userHandler.SignIn)
	api.GET("/auth/confirm", userHandler.Confirm)

	api.GET("/items", catalogHandler.List)
	api.GET("/items/:id", catalogHandler.Get)
	api.POST("/items", catalogHandler.Create, authMw.RequireAuth)
	api.GET("/search", catalogHandler.Search)

	api.GET("/categories", categoryHandler.Tree)
	api.GET("/categories/:slug/items", catalogHandler.ListByCategory)
	api.POST("/categories", categoryHandler.Create, authMw.RequireAuth, authMw.RequireStaff)
	api.PUT("/categories/:id", categoryHandler.Update, authMw.RequireAuth, authMw.RequireStaff)
	api.DELETE("/categories/:id", categoryHandler.Delete, authMw.RequireAuth, authMw.RequireStaff)

	api.GET("/favorites", catalogHandler.Favorites, authMw.RequireAuth)
	api.POST("/items/:id/favorite", favoriteHandler.Add, authMw.RequireAuth)
	api.DELETE("/items/:id/favorite", favoriteHandler.Remove, authMw.RequireAuth)
	api.GET("/items/:id/favorite", favoriteHandler.Contains, authMw.RequireAuth)

	api.POST("/items/:id/reviews", reviewHandler.Add, authMw.RequireAuth)

	api.GET("/basket", basketHandler.Get)
	api.POST("/basket/items/:id", basketHandler.Add)
	api.DELETE("/basket/items/:id", basketHandler.Remove)
	api.GET("/basket/items/:id", basketHandler.Contains)
	api.POST("/checkout", checkoutHandler.Checkout, authMw.OptionalAuth)

	api.GET("/me/profile", userHandler.Profile, authMw.RequireAuth)
	api.PUT("/me/profile", userHandler.UpdateProfile, authMw.RequireAuth)
	api.PUT("/me/email", userHandler.ChangeEmail, authMw.RequireAuth)
	api.GET("/me/purchases", userHandler.Purchases, authMw.RequireAuth)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
