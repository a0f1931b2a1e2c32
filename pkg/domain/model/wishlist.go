package model

// WishlistSnapshot is the full wishlist state as serialized into the
// "wishlist" slot. Items have set semantics keyed by product id.
type WishlistSnapshot struct {
	Items []Product `json:"items"`
}
