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
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Container is the read-only view of a multi-array file that the
// validation engine needs. It matches the header API of
// github.com/ctessum/cdf, so a *cdf.Header is a Container.
type Container interface {
	// Attributes returns the names of the attributes of variable v,
	// or of the global attributes if v == "".
	Attributes(v string) []string

	// GetAttribute returns the value of attribute a of variable v, or of
	// the global attribute a if v == "". It returns nil if there is no
	// such attribute.
	GetAttribute(v, a string) interface{}

	// Dimensions returns the dimension names of variable v, or all
	// dimension names if v == "".
	Dimensions(v string) []string

	// Lengths returns the dimension lengths of variable v, or the lengths
	// of all dimensions if v == "".
	Lengths(v string) []int

	// Variables returns the names of all variables.
	Variables() []string
}

// AttributeString renders a NetCDF attribute value as a string.
// Single-element numeric attributes render as the scalar value.
func AttributeString(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []uint8:
		return strings.TrimRight(string(v), "\x00")
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Slice {
		if rv.Len() == 1 {
			if s, err := cast.ToStringE(rv.Index(0).Interface()); err == nil {
				return s
			}
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = cast.ToString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	}
	if s, err := cast.ToStringE(val); err == nil {
		return s
	}
	return fmt.Sprint(val)
}

// Dataset provides SOFA-level access to a Container.
type Dataset struct {
	Container
}

// NewDataset wraps c.
func NewDataset(c Container) *Dataset {
	if ds, ok := c.(*Dataset); ok {
		return ds
	}
	return &Dataset{Container: c}
}

// HasGlobalAttribute returns whether the global attribute name exists.
func (ds *Dataset) HasGlobalAttribute(name string) bool {
	return ds.GetAttribute("", name) != nil
}

// GlobalAttribute returns the value of the global attribute name.
func (ds *Dataset) GlobalAttribute(name string) (string, error) {
	v := ds.GetAttribute("", name)
	if v == nil {
		return "", newError(MissingAttribute, name, "Attribute not found: %s", name)
	}
	return AttributeString(v), nil
}

// GlobalAttributes returns all global attributes rendered as strings.
func (ds *Dataset) GlobalAttributes() map[string]string {
	o := make(map[string]string)
	for _, a := range ds.Attributes("") {
		o[a] = AttributeString(ds.GetAttribute("", a))
	}
	return o
}

// DimensionTable returns the dimensions of the underlying container.
func (ds *Dataset) DimensionTable() DimensionTable {
	return NewDimensionTable(ds.Container)
}

// DimensionSize returns the size of the dimension named symbol.
func (ds *Dataset) DimensionSize(symbol string) (int, error) {
	return ds.DimensionTable().SizeOf(symbol)
}

// HasVariable returns whether the variable name exists.
func (ds *Dataset) HasVariable(name string) bool {
	for _, v := range ds.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

// VariableShape returns the dimension lengths of variable name.
func (ds *Dataset) VariableShape(name string) ([]int, error) {
	if !ds.HasVariable(name) {
		return nil, newError(MissingVariable, name, "Variable not found: %s", name)
	}
	return ds.Lengths(name), nil
}

// VariableDimensions returns the dimension symbols of variable name.
func (ds *Dataset) VariableDimensions(name string) ([]string, error) {
	if !ds.HasVariable(name) {
		return nil, newError(MissingVariable, name, "Variable not found: %s", name)
	}
	return ds.Dimensions(name), nil
}

// VariableAttribute returns the value of attribute attr of variable name.
// ok is false if the variable exists but the attribute does not.
func (ds *Dataset) VariableAttribute(name, attr string) (value string, ok bool, err error) {
	if !ds.HasVariable(name) {
		return "", false, newError(MissingVariable, name, "Variable not found: %s", name)
	}
	v := ds.GetAttribute(name, attr)
	if v == nil {
		return "", false, nil
	}
	return AttributeString(v), true, nil
}

// PositionInfo returns the Units and Type attributes of the position
// variable name. Absent attributes are returned as empty strings.
func (ds *Dataset) PositionInfo(name string) (units, coordinates string, err error) {
	if !ds.HasVariable(name) {
		return "", "", newError(MissingVariable, name, "Variable not found: %s", name)
	}
	p := NewPositionVariable(ds, name)
	units, _ = p.Units()
	coordinates, _ = p.Type()
	return units, coordinates, nil
}

// DataType returns the value of the DataType attribute.
func (ds *Dataset) DataType() (DataType, error) {
	v, err := ds.GlobalAttribute("DataType")
	if err != nil {
		return "", newError(MissingAttribute, "DataType", "No DataType attribute")
	}
	return DataType(v), nil
}

// Convention returns the value of the SOFAConventions attribute.
func (ds *Dataset) Convention() (string, error) {
	return ds.GlobalAttribute("SOFAConventions")
}

// HasListenerUp returns whether ListenerUp exists.
func (ds *Dataset) HasListenerUp() bool { return ds.HasVariable("ListenerUp") }

// HasListenerView returns whether ListenerView exists.
func (ds *Dataset) HasListenerView() bool { return ds.HasVariable("ListenerView") }

// HasSourceUp returns whether SourceUp exists.
func (ds *Dataset) HasSourceUp() bool { return ds.HasVariable("SourceUp") }

// HasSourceView returns whether SourceView exists.
func (ds *Dataset) HasSourceView() bool { return ds.HasVariable("SourceView") }

// HasReceiverUp returns whether ReceiverUp exists.
func (ds *Dataset) HasReceiverUp() bool { return ds.HasVariable("ReceiverUp") }

// HasReceiverView returns whether ReceiverView exists.
func (ds *Dataset) HasReceiverView() bool { return ds.HasVariable("ReceiverView") }

// HasEmitterUp returns whether EmitterUp exists.
func (ds *Dataset) HasEmitterUp() bool { return ds.HasVariable("EmitterUp") }

// HasEmitterView returns whether EmitterView exists.
func (ds *Dataset) HasEmitterView() bool { return ds.HasVariable("EmitterView") }
