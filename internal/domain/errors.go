package domain

import (
	"errors"
	"fmt"
)

// Sentinel failure kinds. Callers branch with errors.Is; the typed wrappers
// below carry request context.
var (
	ErrAddressNotFound    = errors.New("address not found")
	ErrGeocodeUnavailable = errors.New("geocoding service unavailable")
	ErrStoreConnection    = errors.New("venue store connection failed")
	ErrStoreIndexMissing  = errors.New("venue store geospatial index missing")
	ErrOutOfRange         = errors.New("value out of range")
)

// GeocodeError wraps a geocoding failure with the offending address.
type GeocodeError struct {
	Address string
	Err     error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Address, e.Err)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// StoreError wraps a venue store failure with the operation that failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("venue store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError reports a filter value outside its allowed bounds.
// Out-of-range values are rejected at the boundary, before any external
// call, rather than clamped.
type ValidationError struct {
	Field    string
	Value    int
	Min, Max int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s=%d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *ValidationError) Unwrap() error { return ErrOutOfRange }
