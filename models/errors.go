package models

import "errors"

// ErrInvalidTransition is returned when a lifecycle change is not allowed
// from the current state (reactivating a cancelled subscription, re-sending
// a notification).
var ErrInvalidTransition = errors.New("invalid state transition")
