package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers
// return these (optionally wrapped) so handlers can translate them into HTTP
// statuses without knowing which backend produced them.
//
// - ErrNotFound: no stored report matches
// - ErrInvalidInput: caller asked for something that cannot exist (unknown suite)
// - ErrUnavailable: backing service temporarily unavailable
// - ErrConflict: a run of the same suite is already in flight
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("unavailable")
	ErrConflict     = errors.New("conflict")
)
