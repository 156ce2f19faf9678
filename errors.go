package appirater

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence is returned when the backing store fails to load or
	// commit the launch state.
	ErrPersistence = errors.New("appirater: persistence failure")

	// ErrVersionLookup reports that the current version code could not be
	// resolved. It is logged and never returned to the host.
	ErrVersionLookup = errors.New("appirater: version lookup failed")

	// ErrStorePageOpen reports that the store page could not be opened. It is
	// logged and never returned to the host.
	ErrStorePageOpen = errors.New("appirater: store page open failed")

	// ErrNoStoreHandler is the cause used when no StorePageOpener is set.
	ErrNoStoreHandler = errors.New("appirater: no store page handler registered")

	// ErrNoVersionResolver is the cause used when no VersionResolver is set.
	ErrNoVersionResolver = errors.New("appirater: no version resolver registered")
)

// PersistenceError describes a failed store operation.
type PersistenceError struct {
	Op    string // "load", "commit" or "reset"
	AppID string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("appirater: %s state for %s: %v", e.Op, e.AppID, e.Err)
}

// Is makes errors.Is(err, ErrPersistence) true for every PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// VersionLookupError carries the resolver failure for one application.
type VersionLookupError struct {
	AppID string
	Err   error
}

func (e *VersionLookupError) Error() string {
	return fmt.Sprintf("appirater: resolve version code for %s: %v", e.AppID, e.Err)
}

func (e *VersionLookupError) Is(target error) bool {
	return target == ErrVersionLookup
}

func (e *VersionLookupError) Unwrap() error {
	return e.Err
}

// StorePageError carries the opener failure for one application.
type StorePageError struct {
	AppID string
	URL   string
	Err   error
}

func (e *StorePageError) Error() string {
	return fmt.Sprintf("appirater: open store page %s: %v", e.URL, e.Err)
}

func (e *StorePageError) Is(target error) bool {
	return target == ErrStorePageOpen
}

func (e *StorePageError) Unwrap() error {
	return e.Err
}
