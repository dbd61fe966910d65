package domain

// CartItem is one line of the cart.
type CartItem struct {
	Food     Food   `json:"food"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// Cart is the signed-in user's cart.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Subtotal is the sum of price times quantity over every line.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Food.Price * float64(it.Quantity)
	}
	return total
}

// CartItemInput is the body of an add-to-cart request.
type CartItemInput struct {
	FoodID   string `json:"foodId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=99"`
	Note     string `json:"note,omitempty" validate:"max=200"`
}

// QuantityUpdate is the body of an update-cart-item request. Zero removes
// the line.
type QuantityUpdate struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=99"`
}
