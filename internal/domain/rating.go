package domain

import "time"

// Rating is a customer's review of a food.
type Rating struct {
	ID        string    `json:"_id"`
	FoodID    string    `json:"foodId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingInput is the body of an add-rating request.
type RatingInput struct {
	FoodID  string `json:"foodId" validate:"required"`
	Stars   int    `json:"stars" validate:"gte=1,lte=5"`
	Comment string `json:"comment,omitempty" validate:"max=500"`
}
