// Package handler exposes the development backend over HTTP.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hungrynow/hungrynow/internal/mockserver/auth"
	"github.com/hungrynow/hungrynow/internal/mockserver/service"
	"github.com/hungrynow/hungrynow/pkg/health"
	"github.com/hungrynow/hungrynow/pkg/middleware"
)

const component = "mockserver"

// Services groups the business services the handlers call.
type Services struct {
	Users  *service.UserService
	Shop   *service.ShopService
	Images *service.ImageStore
}

// RouterConfig holds the HTTP-level settings of the router.
type RouterConfig struct {
	// PublicURL prefixes the URLs of uploaded images.
	PublicURL         string
	CORS              middleware.CORSConfig
	RateLimitRPS      float64 // 0 disables rate limiting
	RateLimitBurst    int
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with every route of the HungryNow API
// mounted under /api.
func NewRouter(
	svc Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(component))
	r.Use(middleware.PrometheusMetrics(component))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	uploadHandler := NewUploadHandler(svc.Images, cfg.PublicURL, logger)
	r.Get("/uploads/{name}", uploadHandler.Serve)

	// Token validator that bridges to the JWT manager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: claims.UserID, Email: claims.Email}, nil
	}

	authHandler := NewAuthHandler(svc.Users, logger)
	userHandler := NewUserHandler(svc.Users, logger)
	shopHandler := NewShopHandler(svc.Shop, svc.Users, logger)

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimitRPS > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
		}

		// Public endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequestLogger(logger))

			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/forgot-password", authHandler.ForgotPassword)

			r.Group(func(r chi.Router) {
				r.Use(middleware.CacheControl(60))
				r.Get("/categories", shopHandler.ListCategories)
				r.Get("/foods", shopHandler.ListFoods)
				r.Get("/foods/{id}", shopHandler.GetFood)
				r.Get("/ratings/food/{foodId}", shopHandler.ListRatings)
			})
		})

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Use(middleware.RequestLogger(logger))

			r.Post("/auth/logout", authHandler.Logout)

			r.Get("/users/profile", userHandler.GetProfile)
			r.Put("/users/profile", userHandler.UpdateProfile)
			r.Post("/users/change-password", userHandler.ChangePassword)
			r.Post("/users/verify-phone", userHandler.VerifyPhone)

			r.Get("/addresses", userHandler.ListAddresses)
			r.Post("/addresses", userHandler.AddAddress)
			r.Put("/addresses/{id}", userHandler.UpdateAddress)
			r.Delete("/addresses/{id}", userHandler.DeleteAddress)

			r.Post("/upload/image", uploadHandler.Upload)

			r.Get("/cart", shopHandler.GetCart)
			r.Delete("/cart", shopHandler.ClearCart)
			r.Post("/cart/items", shopHandler.AddToCart)
			r.Put("/cart/items/{foodId}", shopHandler.UpdateCartItem)
			r.Delete("/cart/items/{foodId}", shopHandler.RemoveCartItem)

			r.Get("/favorites", shopHandler.ListFavorites)
			r.Post("/favorites/{foodId}", shopHandler.AddFavorite)
			r.Delete("/favorites/{foodId}", shopHandler.RemoveFavorite)

			r.Post("/ratings", shopHandler.AddRating)

			r.Get("/vouchers", shopHandler.ListVouchers)
			r.Post("/vouchers/apply", shopHandler.ApplyVoucher)

			r.Get("/notifications", shopHandler.ListNotifications)
			r.Put("/notifications/{id}/read", shopHandler.MarkNotificationRead)
		})
	})

	return r
}
