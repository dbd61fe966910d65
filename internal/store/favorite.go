package store

import (
	"context"
	"slices"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Favorite action types.
const (
	ActionFetchFavorites = "favorite/fetch"
	ActionAddFavorite    = "favorite/add"
	ActionRemoveFavorite = "favorite/remove"
)

type FavoriteState struct {
	Foods []domain.Food
	Status
}

var fetchFavorites = Thunk[struct{}, []domain.Food]{
	Type:     ActionFetchFavorites,
	Fallback: "Failed to fetch favorites",
	Run: func(ctx context.Context, sess Session, _ struct{}) ([]domain.Food, error) {
		env, err := sess.Client().GetFavorites(ctx)
		return env.Data, err
	},
}

var addFavorite = Thunk[string, domain.Food]{
	Type:     ActionAddFavorite,
	Fallback: "Failed to add favorite",
	Run: func(ctx context.Context, sess Session, foodID string) (domain.Food, error) {
		env, err := sess.Client().AddFavorite(ctx, foodID)
		return env.Data, err
	},
}

var removeFavorite = Thunk[string, string]{
	Type:     ActionRemoveFavorite,
	Fallback: "Failed to remove favorite",
	Run: func(ctx context.Context, sess Session, foodID string) (string, error) {
		if _, err := sess.Client().RemoveFavorite(ctx, foodID); err != nil {
			return "", err
		}
		return foodID, nil
	},
}

// FetchFavorites loads the favorite foods.
func (s *Store) FetchFavorites(ctx context.Context) ([]domain.Food, error) {
	return fetchFavorites.Dispatch(ctx, s, struct{}{})
}

// AddFavorite marks foodID as a favorite.
func (s *Store) AddFavorite(ctx context.Context, foodID string) (domain.Food, error) {
	return addFavorite.Dispatch(ctx, s, foodID)
}

// RemoveFavorite unmarks foodID.
func (s *Store) RemoveFavorite(ctx context.Context, foodID string) error {
	_, err := removeFavorite.Dispatch(ctx, s, foodID)
	return err
}

func (st *FavoriteState) reduce(a Action) {
	switch a.Type {
	case ActionFetchFavorites:
		st.reduceAsync(a, func() string {
			foods, _ := a.Payload.([]domain.Food)
			st.Foods = slices.Clone(foods)
			return "Loaded favorites successfully"
		})
	case ActionAddFavorite:
		st.reduceAsync(a, func() string {
			f, _ := a.Payload.(domain.Food)
			if !slices.ContainsFunc(st.Foods, func(x domain.Food) bool { return x.ID == f.ID }) {
				st.Foods = append(st.Foods, f)
			}
			return "Added to favorites"
		})
	case ActionRemoveFavorite:
		st.reduceAsync(a, func() string {
			id, _ := a.Payload.(string)
			st.Foods = slices.DeleteFunc(slices.Clone(st.Foods), func(x domain.Food) bool { return x.ID == id })
			return "Removed from favorites"
		})
	}
}
