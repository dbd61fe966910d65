package domain

// Category groups foods on the home screen.
type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Food is a menu item. Price is in VND.
type Food struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	CategoryID  string  `json:"categoryId"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
	IsAvailable bool    `json:"isAvailable"`
}

// FoodFilter narrows a food listing. Empty fields do not filter.
type FoodFilter struct {
	CategoryID string
	Search     string
}
