package service

type Event interface {
	Type() string
}

// EventDispatcher delivery is best effort; services never fail an operation
// because a listener did.
type EventDispatcher interface {
	Dispatch(event Event) error
}
