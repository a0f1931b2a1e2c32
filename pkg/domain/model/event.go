package model

type ProductAdded struct {
	ProductID string
	Title     string
}

func (e ProductAdded) Type() string { return "ProductAdded" }

type ProductRemoved struct {
	ProductID string
}

func (e ProductRemoved) Type() string { return "ProductRemoved" }

type CartItemAdded struct {
	ProductID   string
	Added       int
	NewQuantity int
}

func (e CartItemAdded) Type() string { return "CartItemAdded" }

type CartItemRemoved struct {
	ProductID string
}

func (e CartItemRemoved) Type() string { return "CartItemRemoved" }

type CartCleared struct{}

func (e CartCleared) Type() string { return "CartCleared" }

type WishlistToggled struct {
	ProductID string
	Added     bool
}

func (e WishlistToggled) Type() string { return "WishlistToggled" }

type UserRegistered struct {
	UserID string
	Email  string
}

func (e UserRegistered) Type() string { return "UserRegistered" }

type UserLoggedIn struct {
	UserID string
	Role   Role
}

func (e UserLoggedIn) Type() string { return "UserLoggedIn" }

type UserLoggedOut struct {
	UserID string
}

func (e UserLoggedOut) Type() string { return "UserLoggedOut" }

type OrderPlaced struct {
	OrderID string
	Total   float64
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type OrderStatusChanged struct {
	OrderID   string
	OldStatus OrderStatus
	NewStatus OrderStatus
}

func (e OrderStatusChanged) Type() string { return "OrderStatusChanged" }
