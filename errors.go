/*
Copyright © 2018 the sofa authors.
This file is part of sofa.

sofa is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

sofa is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with sofa.  If not, see <http://www.gnu.org/licenses/>.
*/

package sofa

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure.
type Kind int

// These are the kinds of failure reported by the validation engine.
const (
	// MissingAttribute is a required global attribute that is absent.
	MissingAttribute Kind = iota + 1
	// InvalidConventionTag is a Conventions attribute other than "SOFA".
	InvalidConventionTag
	// DimensionNotFound is a canonical dimension that is absent.
	DimensionNotFound
	// InvalidDimensionSize is a dimension whose size is out of range.
	InvalidDimensionSize
	// MissingVariable is a structurally mandatory variable that is absent.
	MissingVariable
	// InvalidEntityState is an Up variable without a View variable or vice versa.
	InvalidEntityState
	// InvalidShape is a variable whose shape matches none of the legal shapes.
	InvalidShape
	// MissingVariableAttribute is a variable lacking a required attribute.
	MissingVariableAttribute
	// UnknownUnit is a units string that is not in the unit registry.
	UnknownUnit
	// UnknownDataType is a DataType outside of FIR, FIRE, SOS and TF.
	UnknownDataType
	// ConventionMismatch is a failed convention-specific rule.
	ConventionMismatch
	// UnknownAttribute is a name that is not in the attribute schema.
	UnknownAttribute
)

var kindNames = map[Kind]string{
	MissingAttribute:         "MissingAttribute",
	InvalidConventionTag:     "InvalidConventionTag",
	DimensionNotFound:        "DimensionNotFound",
	InvalidDimensionSize:     "InvalidDimensionSize",
	MissingVariable:          "MissingVariable",
	InvalidEntityState:       "InvalidEntityState",
	InvalidShape:             "InvalidShape",
	MissingVariableAttribute: "MissingVariableAttribute",
	UnknownUnit:              "UnknownUnit",
	UnknownDataType:          "UnknownDataType",
	ConventionMismatch:       "ConventionMismatch",
	UnknownAttribute:         "UnknownAttribute",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a validation failure. Name holds the offending attribute,
// variable or dimension. For shape failures, Actual holds the shape that
// was found and Expected the legal alternatives.
type Error struct {
	Kind     Kind
	Name     string
	Message  string
	Actual   []int
	Expected []Shape
}

func (e *Error) Error() string { return e.Message }

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, ErrInvalidShape) works for any shape failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors for use with errors.Is.
var (
	ErrMissingAttribute         = &Error{Kind: MissingAttribute}
	ErrInvalidConventionTag     = &Error{Kind: InvalidConventionTag}
	ErrDimensionNotFound        = &Error{Kind: DimensionNotFound}
	ErrInvalidDimensionSize     = &Error{Kind: InvalidDimensionSize}
	ErrMissingVariable          = &Error{Kind: MissingVariable}
	ErrInvalidEntityState       = &Error{Kind: InvalidEntityState}
	ErrInvalidShape             = &Error{Kind: InvalidShape}
	ErrMissingVariableAttribute = &Error{Kind: MissingVariableAttribute}
	ErrUnknownUnit              = &Error{Kind: UnknownUnit}
	ErrUnknownDataType          = &Error{Kind: UnknownDataType}
	ErrConventionMismatch       = &Error{Kind: ConventionMismatch}
	ErrUnknownAttribute         = &Error{Kind: UnknownAttribute}
)

// KindOf returns the Kind of err, or 0 if err is not a validation failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(k Kind, name, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Name: name, Message: fmt.Sprintf(format, args...)}
}
