package kmap

import (
	"errors"
	"fmt"
)

// ErrUndefinedProperty reports a get or set against a name outside the
// recognized property table.
var ErrUndefinedProperty = errors.New("kmap: undefined property")

// PropertyError captures the component, operation and property name that
// produced a non-fatal diagnostic.
type PropertyError struct {
	Component string
	Operation string
	Property  string
	Value     any
	Err       error
}

func (e *PropertyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v %q on %s %s", e.Err, e.Property, e.Component, e.Operation)
}

func (e *PropertyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SetStatus enumerates the outcomes of a property set.
type SetStatus int

const (
	// SetApplied means the value was stored.
	SetApplied SetStatus = iota
	// SetUnknownProperty means the name is not recognized; state is unchanged.
	SetUnknownProperty
)

func (s SetStatus) String() string {
	switch s {
	case SetApplied:
		return "applied"
	case SetUnknownProperty:
		return "unknown_property"
	default:
		return "unknown"
	}
}

// SetResult is returned by every property set.
type SetResult struct {
	Property string
	Status   SetStatus
	err      *PropertyError
}

// Applied reports whether the value was stored.
func (r SetResult) Applied() bool {
	return r.Status == SetApplied
}

// Err returns the diagnostic for a failed set, or nil.
func (r SetResult) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// GetResult is returned by every property get.
type GetResult struct {
	Property string
	Value    any
	Found    bool
	err      *PropertyError
}

// Err returns the diagnostic for an unsupported get, or nil.
func (r GetResult) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

func applied(property string) SetResult {
	return SetResult{Property: property, Status: SetApplied}
}

func rejected(component, property string, value any) SetResult {
	return SetResult{
		Property: property,
		Status:   SetUnknownProperty,
		err: &PropertyError{
			Component: component,
			Operation: "set",
			Property:  property,
			Value:     value,
			Err:       ErrUndefinedProperty,
		},
	}
}

func found(property string, value any) GetResult {
	return GetResult{Property: property, Value: value, Found: true}
}

func notFound(component, property string) GetResult {
	return GetResult{
		Property: property,
		err: &PropertyError{
			Component: component,
			Operation: "get",
			Property:  property,
			Err:       ErrUndefinedProperty,
		},
	}
}
