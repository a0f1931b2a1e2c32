package model

// CartEntry is a product snapshot plus a mutable quantity. The cart holds at
// most one entry per product id.
type CartEntry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartSnapshot is the full cart state as serialized into the "cart" slot.
type CartSnapshot struct {
	Items []CartEntry `json:"items"`
}

type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}
