package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hungrynow/hungrynow/internal/domain"
	apperrors "github.com/hungrynow/hungrynow/pkg/errors"
)

const maxCartQuantity = 99

type cartLine struct {
	foodID   string
	quantity int
	note     string
}

// ShopService keeps the menu and every per-user shopping collection in
// memory: carts, favorites, ratings, vouchers and notifications.
type ShopService struct {
	logger *slog.Logger
	now    func() time.Time

	mu            sync.RWMutex
	categories    []domain.Category
	foods         []domain.Food
	vouchers      []domain.Voucher
	carts         map[string][]cartLine
	favorites     map[string][]string
	ratings       map[string][]domain.Rating // food id -> newest first
	notifications map[string][]domain.Notification
}

// NewShopService creates a shop holding the given catalog.
func NewShopService(catalog Catalog, logger *slog.Logger) *ShopService {
	return &ShopService{
		logger:        logger,
		now:           time.Now,
		categories:    slices.Clone(catalog.Categories),
		foods:         slices.Clone(catalog.Foods),
		vouchers:      slices.Clone(catalog.Vouchers),
		carts:         make(map[string][]cartLine),
		favorites:     make(map[string][]string),
		ratings:       make(map[string][]domain.Rating),
		notifications: make(map[string][]domain.Notification),
	}
}

// --- Catalog ---

// Categories lists every category.
func (s *ShopService) Categories(_ context.Context) []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// Foods lists the foods matching filter. Search is a case-insensitive
// substring match on name and description.
func (s *ShopService) Foods(_ context.Context, filter domain.FoodFilter) []domain.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := []domain.Food{}
	for _, f := range s.foods {
		if filter.CategoryID != "" && f.CategoryID != filter.CategoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(f.Name), search) &&
			!strings.Contains(strings.ToLower(f.Description), search) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Food returns one food.
func (s *ShopService) Food(_ context.Context, id string) (domain.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.food(id)
	if !ok {
		return domain.Food{}, apperrors.NotFound("food", id)
	}
	return f, nil
}

// food must be called with mu held.
func (s *ShopService) food(id string) (domain.Food, bool) {
	i := slices.IndexFunc(s.foods, func(f domain.Food) bool { return f.ID == id })
	if i < 0 {
		return domain.Food{}, false
	}
	return s.foods[i], true
}

// --- Cart ---

// Cart returns the user's cart.
func (s *ShopService) Cart(_ context.Context, userID string) domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart(userID)
}

// AddToCart adds a food to the cart. Adding a food that is already in the
// cart increases its quantity; a non-empty note replaces the old one.
func (s *ShopService) AddToCart(_ context.Context, userID string, in domain.CartItemInput) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.food(in.FoodID)
	if !ok {
		return domain.Cart{}, apperrors.NotFound("food", in.FoodID)
	}
	if !f.IsAvailable {
		return domain.Cart{}, apperrors.InvalidInput(f.Name + " is currently unavailable")
	}

	lines := s.carts[userID]
	i := slices.IndexFunc(lines, func(l cartLine) bool { return l.foodID == in.FoodID })
	if i < 0 {
		lines = append(lines, cartLine{foodID: in.FoodID, quantity: in.Quantity, note: in.Note})
	} else {
		qty := lines[i].quantity + in.Quantity
		if qty > maxCartQuantity {
			return domain.Cart{}, apperrors.InvalidInput(fmt.Sprintf("at most %d of one food per order", maxCartQuantity))
		}
		lines[i].quantity = qty
		if in.Note != "" {
			lines[i].note = in.Note
		}
	}
	s.carts[userID] = lines
	return s.cart(userID), nil
}

// UpdateCartItem sets the quantity of a cart line. Zero removes the line.
func (s *ShopService) UpdateCartItem(_ context.Context, userID, foodID string, quantity int) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	i := slices.IndexFunc(lines, func(l cartLine) bool { return l.foodID == foodID })
	if i < 0 {
		return domain.Cart{}, apperrors.NotFound("cart item", foodID)
	}
	if quantity == 0 {
		s.carts[userID] = slices.Delete(lines, i, i+1)
	} else {
		lines[i].quantity = quantity
	}
	return s.cart(userID), nil
}

// RemoveCartItem drops a line from the cart.
func (s *ShopService) RemoveCartItem(ctx context.Context, userID, foodID string) (domain.Cart, error) {
	return s.UpdateCartItem(ctx, userID, foodID, 0)
}

// ClearCart empties the cart.
func (s *ShopService) ClearCart(_ context.Context, userID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return s.cart(userID)
}

// cart must be called with mu held.
func (s *ShopService) cart(userID string) domain.Cart {
	c := domain.Cart{Items: []domain.CartItem{}}
	for _, l := range s.carts[userID] {
		f, ok := s.food(l.foodID)
		if !ok {
			continue
		}
		c.Items = append(c.Items, domain.CartItem{Food: f, Quantity: l.quantity, Note: l.note})
	}
	return c
}

// --- Favorites ---

// Favorites lists the user's favorite foods, most recently added last.
func (s *ShopService) Favorites(_ context.Context, userID string) []domain.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Food{}
	for _, id := range s.favorites[userID] {
		if f, ok := s.food(id); ok {
			out = append(out, f)
		}
	}
	return out
}

// AddFavorite marks a food as favorite. Adding it twice is a no-op.
func (s *ShopService) AddFavorite(_ context.Context, userID, foodID string) (domain.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.food(foodID)
	if !ok {
		return domain.Food{}, apperrors.NotFound("food", foodID)
	}
	if !slices.Contains(s.favorites[userID], foodID) {
		s.favorites[userID] = append(s.favorites[userID], foodID)
	}
	return f, nil
}

// RemoveFavorite unmarks a favorite food.
func (s *ShopService) RemoveFavorite(_ context.Context, userID, foodID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.favorites[userID]
	i := slices.Index(ids, foodID)
	if i < 0 {
		return apperrors.NotFound("favorite", foodID)
	}
	s.favorites[userID] = slices.Delete(ids, i, i+1)
	return nil
}

// --- Ratings ---

// Ratings lists the reviews of a food, newest first.
func (s *ShopService) Ratings(_ context.Context, foodID string) ([]domain.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.food(foodID); !ok {
		return nil, apperrors.NotFound("food", foodID)
	}
	out := slices.Clone(s.ratings[foodID])
	if out == nil {
		out = []domain.Rating{}
	}
	return out, nil
}

// AddRating stores a review and refreshes the food's average.
func (s *ShopService) AddRating(_ context.Context, author domain.User, in domain.RatingInput) (domain.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.foods, func(f domain.Food) bool { return f.ID == in.FoodID })
	if i < 0 {
		return domain.Rating{}, apperrors.NotFound("food", in.FoodID)
	}

	r := domain.Rating{
		ID:        uuid.New().String(),
		FoodID:    in.FoodID,
		UserID:    author.ID,
		UserName:  author.FullName,
		Stars:     in.Stars,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: s.now().UTC(),
	}
	s.ratings[in.FoodID] = append([]domain.Rating{r}, s.ratings[in.FoodID]...)

	f := &s.foods[i]
	total := f.Rating*float64(f.RatingCount) + float64(in.Stars)
	f.RatingCount++
	f.Rating = math.Round(total/float64(f.RatingCount)*10) / 10

	s.logger.Info("rating added", slog.String("food_id", in.FoodID), slog.Int("stars", in.Stars))
	return r, nil
}

// --- Vouchers ---

// Vouchers lists the vouchers that have not expired.
func (s *ShopService) Vouchers(_ context.Context) []domain.Voucher {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := []domain.Voucher{}
	for _, v := range s.vouchers {
		if !v.Expired(now) {
			out = append(out, v)
		}
	}
	return out
}

// ApplyVoucher computes the discount of a voucher code on subtotal.
func (s *ShopService) ApplyVoucher(_ context.Context, in domain.VoucherApplication) (domain.AppliedVoucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code := strings.ToUpper(strings.TrimSpace(in.Code))
	i := slices.IndexFunc(s.vouchers, func(v domain.Voucher) bool { return v.Code == code })
	if i < 0 {
		return domain.AppliedVoucher{}, apperrors.NotFound("voucher", code)
	}
	v := s.vouchers[i]
	if v.Expired(s.now()) {
		return domain.AppliedVoucher{}, apperrors.InvalidInput("voucher " + code + " has expired")
	}
	if in.Subtotal < v.MinOrderValue {
		return domain.AppliedVoucher{}, apperrors.InvalidInput(
			fmt.Sprintf("order must be at least %.0f to use voucher %s", v.MinOrderValue, code))
	}
	return domain.AppliedVoucher{Voucher: v, Discount: v.Discount(in.Subtotal)}, nil
}

// --- Notifications ---

// Notifications lists the user's notifications, newest first. A user's
// first listing is seeded with a welcome message.
func (s *ShopService) Notifications(_ context.Context, userID string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[userID]; !ok {
		s.notifications[userID] = []domain.Notification{{
			ID:        uuid.New().String(),
			Title:     "Welcome to HungryNow",
			Body:      "Use code WELCOME10 for 10% off your first order.",
			CreatedAt: s.now().UTC(),
		}}
	}
	return slices.Clone(s.notifications[userID])
}

// Notify prepends a notification to the user's list.
func (s *ShopService) Notify(_ context.Context, userID, title, body string) domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := domain.Notification{ID: uuid.New().String(), Title: title, Body: body, CreatedAt: s.now().UTC()}
	s.notifications[userID] = append([]domain.Notification{n}, s.notifications[userID]...)
	return n
}

// MarkNotificationRead flags one of the user's notifications as read.
func (s *ShopService) MarkNotificationRead(_ context.Context, userID, id string) (domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.notifications[userID]
	i := slices.IndexFunc(list, func(n domain.Notification) bool { return n.ID == id })
	if i < 0 {
		return domain.Notification{}, apperrors.NotFound("notification", id)
	}
	list[i].IsRead = true
	return list[i], nil
}
