package store

import (
	"context"
	"slices"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Catalog action types.
const (
	ActionFetchCategories = "catalog/fetchCategories"
	ActionFetchFoods      = "catalog/fetchFoods"
	ActionFetchFood       = "catalog/fetchFood"
)

// CatalogState holds the browsable menu. Filter is the filter Foods was
// loaded with.
type CatalogState struct {
	Categories []domain.Category
	Foods      []domain.Food
	Filter     domain.FoodFilter
	Selected   *domain.Food
	Status
}

var fetchCategories = Thunk[struct{}, []domain.Category]{
	Type:     ActionFetchCategories,
	Fallback: "Failed to fetch categories",
	Run: func(ctx context.Context, sess Session, _ struct{}) ([]domain.Category, error) {
		env, err := sess.Client().GetCategories(ctx)
		return env.Data, err
	},
}

var fetchFoods = Thunk[domain.FoodFilter, []domain.Food]{
	Type:     ActionFetchFoods,
	Fallback: "Failed to fetch foods",
	Run: func(ctx context.Context, sess Session, f domain.FoodFilter) ([]domain.Food, error) {
		env, err := sess.Client().GetFoods(ctx, f)
		return env.Data, err
	},
}

var fetchFood = Thunk[string, domain.Food]{
	Type:     ActionFetchFood,
	Fallback: "Failed to fetch food",
	Run: func(ctx context.Context, sess Session, id string) (domain.Food, error) {
		env, err := sess.Client().GetFood(ctx, id)
		return env.Data, err
	},
}

// FetchCategories loads the food categories.
func (s *Store) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	return fetchCategories.Dispatch(ctx, s, struct{}{})
}

// FetchFoods loads the foods matching f.
func (s *Store) FetchFoods(ctx context.Context, f domain.FoodFilter) ([]domain.Food, error) {
	return fetchFoods.Dispatch(ctx, s, f)
}

// FetchFood loads one food into CatalogState.Selected.
func (s *Store) FetchFood(ctx context.Context, id string) (domain.Food, error) {
	return fetchFood.Dispatch(ctx, s, id)
}

func (st *CatalogState) reduce(a Action) {
	switch a.Type {
	case ActionFetchCategories:
		st.reduceAsync(a, func() string {
			cats, _ := a.Payload.([]domain.Category)
			st.Categories = slices.Clone(cats)
			return "Loaded categories successfully"
		})
	case ActionFetchFoods:
		st.reduceAsync(a, func() string {
			foods, _ := a.Payload.([]domain.Food)
			st.Foods = slices.Clone(foods)
			st.Filter, _ = a.Arg.(domain.FoodFilter)
			return "Loaded foods successfully"
		})
	case ActionFetchFood:
		st.reduceAsync(a, func() string {
			if f, ok := a.Payload.(domain.Food); ok {
				st.Selected = &f
			}
			return "Loaded food successfully"
		})
	}
}
