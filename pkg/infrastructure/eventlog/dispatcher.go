// Package eventlog is the default event dispatcher: domain events go to the
// structured log.
package eventlog

import (
	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/service"
)

type Dispatcher struct{}

func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

func (Dispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
