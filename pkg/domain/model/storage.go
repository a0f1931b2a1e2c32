package model

// Slot names used by the storefront.
const (
	SlotCart     = "cart"
	SlotWishlist = "wishlist"
	SlotToken    = "token"
)

// SlotStore reads and writes named slots of serialized state in device-local
// persistent storage. Absent or malformed content loads as absent so callers
// fall back to their empty shape. Slots are saved independently; there is no
// transactional guarantee between them.
type SlotStore interface {
	Save(slot string, v any) error
	Load(slot string, v any) (bool, error)
	Delete(slot string) error
}
