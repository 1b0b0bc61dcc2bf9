package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrNotConnected              = fmt.Errorf("chat room is not connected")
	ErrProviderNotRegistered     = fmt.Errorf("provider not registered")
	ErrSubscriptionAlreadyExists = fmt.Errorf("subscription already exists")
	ErrOperationFailed           = fmt.Errorf("chat room operation failed")
	ErrInvalidRequest            = fmt.Errorf("invalid action request")
	ErrUnknownAction             = fmt.Errorf("unknown action")
	ErrQueueFull                 = fmt.Errorf("action queue is full")
	ErrDispatcherStopped         = fmt.Errorf("dispatcher is stopped")
	ErrRoomNotFound              = fmt.Errorf("chat room not found")
	ErrRoomAlreadyTracked        = fmt.Errorf("chat room already tracked")
	ErrBaseLocaleMissing         = fmt.Errorf("base locale is not defined in catalogs")
	ErrNotificationDropped       = fmt.Errorf("notification buffer full, report dropped")
)
