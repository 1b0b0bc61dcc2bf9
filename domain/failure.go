package domain

import (
	"chat-rooms/errors"
	stderrors "errors"
	"fmt"
)

// FailureReason classifies why a join or leave attempt failed.
type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonProviderNotRegistered
	ReasonSubscriptionAlreadyExists
	ReasonOther
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonProviderNotRegistered:
		return "provider_not_registered"
	case ReasonSubscriptionAlreadyExists:
		return "subscription_already_exists"
	default:
		return "other"
	}
}

// OperationFailedError is returned by ChatRoom implementations.
type OperationFailedError struct {
	Reason FailureReason
	Room   string
	Err    error
}

func NewOperationFailed(reason FailureReason, room string, err error) *OperationFailedError {
	return &OperationFailedError{Reason: reason, Room: room, Err: err}
}

func (e *OperationFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s on %s: %v", e.sentinel(), e.Room, e.Err)
	}
	return fmt.Sprintf("%s on %s", e.sentinel(), e.Room)
}

// Unwrap exposes both the reason sentinel and the cause to errors.Is.
func (e *OperationFailedError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *OperationFailedError) sentinel() error {
	switch e.Reason {
	case ReasonProviderNotRegistered:
		return errors.ErrProviderNotRegistered
	case ReasonSubscriptionAlreadyExists:
		return errors.ErrSubscriptionAlreadyExists
	default:
		return errors.ErrOperationFailed
	}
}

// ClassifyFailure returns exactly one reason for a non-nil error, ReasonNone for nil.
func ClassifyFailure(err error) FailureReason {
	if err == nil {
		return ReasonNone
	}
	var opErr *OperationFailedError
	if stderrors.As(err, &opErr) && opErr.Reason != ReasonNone {
		return opErr.Reason
	}
	switch {
	case stderrors.Is(err, errors.ErrProviderNotRegistered):
		return ReasonProviderNotRegistered
	case stderrors.Is(err, errors.ErrSubscriptionAlreadyExists):
		return ReasonSubscriptionAlreadyExists
	default:
		return ReasonOther
	}
}
