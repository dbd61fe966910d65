package store

import (
	"context"
	"slices"

	"github.com/hungrynow/hungrynow/internal/domain"
)

// Rating action types.
const (
	ActionFetchRatings = "rating/fetchByFood"
	ActionAddRating    = "rating/add"
)

// RatingState holds ratings per food id, newest first.
type RatingState struct {
	ByFood map[string][]domain.Rating
	Status
}

// FoodRatings is the result of FetchRatings.
type FoodRatings struct {
	FoodID  string
	Ratings []domain.Rating
}

var fetchRatings = Thunk[string, FoodRatings]{
	Type:     ActionFetchRatings,
	Fallback: "Failed to fetch ratings",
	Run: func(ctx context.Context, sess Session, foodID string) (FoodRatings, error) {
		env, err := sess.Client().GetFoodRatings(ctx, foodID)
		return FoodRatings{FoodID: foodID, Ratings: env.Data}, err
	},
}

var addRating = Thunk[domain.RatingInput, domain.Rating]{
	Type:     ActionAddRating,
	Fallback: "Failed to submit rating",
	Run: func(ctx context.Context, sess Session, in domain.RatingInput) (domain.Rating, error) {
		env, err := sess.Client().AddRating(ctx, in)
		return env.Data, err
	},
}

// FetchRatings loads the ratings of foodID.
func (s *Store) FetchRatings(ctx context.Context, foodID string) ([]domain.Rating, error) {
	res, err := fetchRatings.Dispatch(ctx, s, foodID)
	return res.Ratings, err
}

// AddRating posts a rating for in.FoodID.
func (s *Store) AddRating(ctx context.Context, in domain.RatingInput) (domain.Rating, error) {
	return addRating.Dispatch(ctx, s, in)
}

func (st *RatingState) reduce(a Action) {
	switch a.Type {
	case ActionFetchRatings:
		st.reduceAsync(a, func() string {
			res, _ := a.Payload.(FoodRatings)
			st.ensure()
			st.ByFood[res.FoodID] = slices.Clone(res.Ratings)
			return "Loaded ratings successfully"
		})
	case ActionAddRating:
		st.reduceAsync(a, func() string {
			r, _ := a.Payload.(domain.Rating)
			st.ensure()
			st.ByFood[r.FoodID] = append([]domain.Rating{r}, st.ByFood[r.FoodID]...)
			return "Thanks for your rating"
		})
	}
}

func (st *RatingState) ensure() {
	if st.ByFood == nil {
		st.ByFood = make(map[string][]domain.Rating)
	}
}
