package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/mockserver/service"
	"github.com/hungrynow/hungrynow/pkg/httputil"
	"github.com/hungrynow/hungrynow/pkg/middleware"
)

// ShopHandler handles the catalog, cart, favorite, rating, voucher and
// notification endpoints.
type ShopHandler struct {
	shop   *service.ShopService
	users  *service.UserService
	logger *slog.Logger
}

// NewShopHandler creates a new shop HTTP handler.
func NewShopHandler(shop *service.ShopService, users *service.UserService, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{shop: shop, users: users, logger: logger}
}

// --- Catalog ---

// ListCategories handles GET /api/categories
func (h *ShopHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.shop.Categories(r.Context()), "")
}

// ListFoods handles GET /api/foods?categoryId=&search=
func (h *ShopHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.FoodFilter{CategoryID: q.Get("categoryId"), Search: q.Get("search")}
	httputil.WriteData(w, http.StatusOK, h.shop.Foods(r.Context(), filter), "")
}

// GetFood handles GET /api/foods/{id}
func (h *ShopHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	food, err := h.shop.Food(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, food, "")
}

// --- Cart ---

// GetCart handles GET /api/cart
func (h *ShopHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.shop.Cart(r.Context(), middleware.UserIDFromContext(r.Context())), "")
}

// AddToCart handles POST /api/cart/items
func (h *ShopHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req domain.CartItemInput
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	cart, err := h.shop.AddToCart(r.Context(), middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cart, "Added to cart")
}

// UpdateCartItem handles PUT /api/cart/items/{foodId}
func (h *ShopHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req domain.QuantityUpdate
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	cart, err := h.shop.UpdateCartItem(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "foodId"), req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cart, "Cart updated")
}

// RemoveCartItem handles DELETE /api/cart/items/{foodId}
func (h *ShopHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.shop.RemoveCartItem(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "foodId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, cart, "Removed from cart")
}

// ClearCart handles DELETE /api/cart
func (h *ShopHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.shop.ClearCart(r.Context(), middleware.UserIDFromContext(r.Context())), "Cart cleared")
}

// --- Favorites ---

// ListFavorites handles GET /api/favorites
func (h *ShopHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.shop.Favorites(r.Context(), middleware.UserIDFromContext(r.Context())), "")
}

// AddFavorite handles POST /api/favorites/{foodId}
func (h *ShopHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	food, err := h.shop.AddFavorite(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "foodId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, food, "Added to favorites")
}

// RemoveFavorite handles DELETE /api/favorites/{foodId}
func (h *ShopHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.shop.RemoveFavorite(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "foodId")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, nil, "Removed from favorites")
}

// --- Ratings ---

// ListRatings handles GET /api/ratings/food/{foodId}
func (h *ShopHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.shop.Ratings(r.Context(), chi.URLParam(r, "foodId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, ratings, "")
}

// AddRating handles POST /api/ratings
func (h *ShopHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	var req domain.RatingInput
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	author, err := h.users.GetProfile(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	rating, err := h.shop.AddRating(r.Context(), *author, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, rating, "Thanks for your review")
}

// --- Vouchers ---

// ListVouchers handles GET /api/vouchers
func (h *ShopHandler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.shop.Vouchers(r.Context()), "")
}

// ApplyVoucher handles POST /api/vouchers/apply
func (h *ShopHandler) ApplyVoucher(w http.ResponseWriter, r *http.Request) {
	var req domain.VoucherApplication
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	applied, err := h.shop.ApplyVoucher(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, applied, "Voucher applied")
}

// --- Notifications ---

// ListNotifications handles GET /api/notifications
func (h *ShopHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.shop.Notifications(r.Context(), middleware.UserIDFromContext(r.Context())), "")
}

// MarkNotificationRead handles PUT /api/notifications/{id}/read
func (h *ShopHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.shop.MarkNotificationRead(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, n, "")
}
