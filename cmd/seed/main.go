// Command seed populates a HungryNow backend with a demo account through the
// client library: the account itself, an address book, favorites, a cart
// and a rating. Running it twice signs in to the existing account.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hungrynow/hungrynow/internal/api"
	"github.com/hungrynow/hungrynow/internal/app"
	"github.com/hungrynow/hungrynow/internal/config"
	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/store"
	"github.com/hungrynow/hungrynow/pkg/logger"
)

// account identifies the demo user.
type account struct {
	FullName string
	Email    string
	Password string
}

var demoAddresses = []domain.Address{
	{Label: "Home", AddressDetail: "12 Ly Tu Trong, Ben Nghe, District 1, Ho Chi Minh City", Latitude: 10.7769, Longitude: 106.7009, IsDefault: true},
	{Label: "Office", AddressDetail: "72 Le Thanh Ton, Ben Nghe, District 1, Ho Chi Minh City", Latitude: 10.7797, Longitude: 106.7036},
	{Label: "Parents", AddressDetail: "35 Hang Bac, Hoan Kiem, Ha Noi", Latitude: 21.0341, Longitude: 105.8526},
}

var (
	demoFavorites = []string{"food-pho-bo", "food-banh-mi-thit", "food-ca-phe-sua-da"}
	demoCart      = []domain.CartItemInput{
		{FoodID: "food-pho-bo", Quantity: 2, Note: "extra herbs"},
		{FoodID: "food-ca-phe-sua-da", Quantity: 1},
	}
	demoRating = domain.RatingInput{FoodID: "food-pho-bo", Stars: 5, Comment: "Broth tastes like home."}
)

func main() {
	log.SetFlags(log.Ltime | log.Lmsgprefix)
	log.SetPrefix("[seed] ")

	acct := account{}
	flag.StringVar(&acct.FullName, "name", "Nguyen Van Demo", "demo account full name")
	flag.StringVar(&acct.Email, "email", "demo@hungrynow.vn", "demo account email")
	flag.StringVar(&acct.Password, "password", "Demo@1234", "demo account password")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	// The demo session must not replace the user's own.
	cfg.SessionStore = config.SessionStoreMemory

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := app.New(ctx, cfg, "hungrynow-seed", logger.New("hungrynow-seed", cfg.LogLevel))
	if err != nil {
		log.Fatalf("initialize client: %v", err)
	}
	defer func() { _ = client.Close(context.Background()) }()

	log.Printf("Seeding %s ...", cfg.APIBaseURL)
	if err := seed(ctx, client.Store, acct); err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}
	log.Printf("Seed complete! Sign in as %s / %s", acct.Email, acct.Password)
}

func seed(ctx context.Context, st *store.Store, acct account) error {
	// ---------------------------------------------------------------
	// 1. Register or sign in to the demo account
	// ---------------------------------------------------------------
	log.Println("Registering demo account...")
	_, err := st.Register(ctx, domain.Registration{FullName: acct.FullName, Email: acct.Email, Password: acct.Password})
	switch {
	case err == nil:
		log.Printf("  Registered %s.", acct.Email)
	case api.StatusCode(err) == http.StatusConflict:
		log.Printf("  %s already exists, signing in.", acct.Email)
		if _, err := st.Login(ctx, acct.Email, acct.Password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	default:
		return fmt.Errorf("register: %w", err)
	}

	// ---------------------------------------------------------------
	// 2. Address book, skipping labels that already exist
	// ---------------------------------------------------------------
	log.Println("Seeding addresses...")
	existing, err := st.FetchAddresses(ctx)
	if err != nil {
		return fmt.Errorf("fetch addresses: %w", err)
	}
	labels := make(map[string]bool, len(existing))
	for _, a := range existing {
		labels[a.Label] = true
	}
	for _, a := range demoAddresses {
		if labels[a.Label] {
			log.Printf("  Address: %s (exists)", a.Label)
			continue
		}
		created, err := st.AddAddress(ctx, a)
		if err != nil {
			log.Printf("  WARNING: address %q: %v", a.Label, err)
			continue
		}
		log.Printf("  Address: %s (id=%s, default=%t)", created.Label, created.ID, created.IsDefault)
	}

	// ---------------------------------------------------------------
	// 3. Favorites
	// ---------------------------------------------------------------
	log.Println("Seeding favorites...")
	for _, id := range demoFavorites {
		if _, err := st.AddFavorite(ctx, id); err != nil {
			log.Printf("  WARNING: favorite %q: %v", id, err)
			continue
		}
		log.Printf("  Favorite: %s", id)
	}

	// ---------------------------------------------------------------
	// 4. Cart
	// ---------------------------------------------------------------
	log.Println("Seeding cart...")
	if _, err := st.ClearCart(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	for _, item := range demoCart {
		if _, err := st.AddToCart(ctx, item); err != nil {
			log.Printf("  WARNING: cart item %q: %v", item.FoodID, err)
			continue
		}
		log.Printf("  Cart: %s x%d", item.FoodID, item.Quantity)
	}

	// ---------------------------------------------------------------
	// 5. Rating
	// ---------------------------------------------------------------
	log.Println("Seeding rating...")
	if _, err := st.AddRating(ctx, demoRating); err != nil {
		log.Printf("  WARNING: rating for %q: %v", demoRating.FoodID, err)
	}

	state := st.State()
	log.Printf("Account has %d addresses, %d favorites, %d items in the cart.",
		len(store.SelectAddresses(state)), len(store.SelectFavorites(state)), store.SelectCartCount(state))
	return nil
}
