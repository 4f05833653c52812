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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityShapes(t *testing.T) {
	dims := map[string]int{DimM: 4, DimR: 2, DimE: 5}
	tests := []struct {
		kind  EntityKind
		shape Shape
		valid bool
	}{
		{Listener, Shape{DimI, DimC}, true},
		{Listener, Shape{DimM, DimC}, true},
		{Listener, Shape{DimC, DimI}, false},
		{Listener, Shape{DimC, DimM}, false},
		{Source, Shape{DimI, DimC}, true},
		{Source, Shape{DimM, DimC}, true},
		{Source, Shape{DimC, DimI}, false},
		{Source, Shape{DimI, DimC, DimI}, false},
		{Receiver, Shape{DimR, DimC, DimI}, true},
		{Receiver, Shape{DimR, DimC, DimM}, true},
		{Receiver, Shape{DimC, DimR, DimI}, false},
		{Receiver, Shape{DimE, DimC, DimI}, false},
		{Emitter, Shape{DimE, DimC, DimI}, true},
		{Emitter, Shape{DimE, DimC, DimM}, true},
		{Emitter, Shape{DimC, DimE, DimI}, false},
		{Emitter, Shape{DimE, DimC}, false},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s%s", test.kind, test.shape), func(t *testing.T) {
			tmpl := NewTemplate(FIR, dims)
			tmpl.Variable(test.kind.PositionName()).Dimensions = test.shape
			h := headerOf(t, tmpl)

			e, err := LoadEntity(test.kind, h)
			require.NoError(t, err)
			err = e.ValidateDimensions(NewDimensionTable(h))
			if test.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidShape))
			var se *Error
			require.True(t, errors.As(err, &se))
			assert.Equal(t, test.kind.PositionName(), se.Name)
			assert.Equal(t, test.kind.Shapes(), se.Expected)
		})
	}
}

// Shapes are compared by the sizes that their symbols refer to, so a
// swapped shape whose sizes are identical is accepted.
func TestEntityShapes_sameSizes(t *testing.T) {
	tmpl := NewTemplate(FIR, map[string]int{DimE: 3})
	tmpl.Variable("EmitterPosition").Dimensions = Shape{DimC, DimE, DimI}
	h := headerOf(t, tmpl)
	e, err := LoadEntity(Emitter, h)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.ValidateDimensions(NewDimensionTable(h)); err != nil {
		t.Errorf("[C,E,I] with E=C=3 should be accepted: %v", err)
	}
}

func TestEntityShapeMessage(t *testing.T) {
	tmpl := NewTemplate(FIR, nil)
	tmpl.Variable("ListenerPosition").Dimensions = Shape{DimC, DimI}
	h := headerOf(t, tmpl)
	e, err := LoadEntity(Listener, h)
	require.NoError(t, err)
	err = e.ValidateDimensions(NewDimensionTable(h))
	require.Error(t, err)
	assert.Equal(t, "Invalid ListenerPosition Dimensions for Listener (should be [I,C] or [M,C]): [3 1]", err.Error())
}

func TestEntityUpViewShape(t *testing.T) {
	tmpl := NewTemplate(FIR, map[string]int{DimM: 2})
	orient(tmpl, Source)
	tmpl.Variable("SourceView").Dimensions = Shape{DimC, DimM}
	h := headerOf(t, tmpl)
	e, err := LoadEntity(Source, h)
	require.NoError(t, err)
	assert.True(t, e.HasUp())
	assert.True(t, e.HasView())
	err = e.ValidateDimensions(NewDimensionTable(h))
	require.Error(t, err)
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "SourceView", se.Name)
	assert.Equal(t, []int{3, 2}, se.Actual)

	se.Actual[0] = 99
	if got := h.Lengths("SourceView"); !reflect.DeepEqual(got, []int{3, 2}) {
		t.Errorf("header lengths changed through the error: %v != %v", got, []int{3, 2})
	}
}

func TestEntityPairing(t *testing.T) {
	for _, k := range EntityKinds {
		t.Run(k.String(), func(t *testing.T) {
			tmpl := NewTemplate(FIR, nil)
			orient(tmpl, k)
			h := headerOf(t, tmpl)
			pos := NewPositionVariable(h, k.PositionName())
			up := NewPositionVariable(h, k.UpName())
			view := NewPositionVariable(h, k.ViewName())
			require.False(t, up.IsNull())
			require.False(t, view.IsNull())

			_, err := NewEntity(k, pos, up, PositionVariable{})
			assert.True(t, errors.Is(err, ErrInvalidEntityState))
			assert.Equal(t, fmt.Sprintf("%sUp exists but not %sView", k, k), err.Error())

			_, err = NewEntity(k, pos, PositionVariable{}, view)
			assert.True(t, errors.Is(err, ErrInvalidEntityState))
			assert.Equal(t, fmt.Sprintf("%sView exists but not %sUp", k, k), err.Error())

			_, err = NewEntity(k, pos, up, view)
			assert.NoError(t, err)
			_, err = NewEntity(k, pos, PositionVariable{}, PositionVariable{})
			assert.NoError(t, err)

			tmpl.RemoveVariable(k.ViewName())
			_, err = LoadEntity(k, headerOf(t, tmpl))
			assert.Equal(t, InvalidEntityState, KindOf(err))
		})
	}
}

func TestLoadEntity(t *testing.T) {
	t.Run("missing position", func(t *testing.T) {
		tmpl := NewTemplate(FIR, nil)
		tmpl.RemoveVariable("ReceiverPosition")
		_, err := LoadEntity(Receiver, headerOf(t, tmpl))
		assert.True(t, errors.Is(err, ErrMissingVariable))
		assert.Equal(t, "Missing Variable: ReceiverPosition", err.Error())
	})
	t.Run("missing units", func(t *testing.T) {
		tmpl := NewTemplate(FIR, nil)
		delete(tmpl.Variable("EmitterPosition").Attributes, "Units")
		_, err := LoadEntity(Emitter, headerOf(t, tmpl))
		assert.True(t, errors.Is(err, ErrMissingVariableAttribute))
		assert.Equal(t, "Missing Variable Attribute: EmitterPosition.Units", err.Error())
	})
	t.Run("empty type", func(t *testing.T) {
		tmpl := NewTemplate(FIR, nil)
		tmpl.Variable("SourcePosition").Attributes["Type"] = ""
		_, err := LoadEntity(Source, headerOf(t, tmpl))
		assert.Equal(t, "Missing Variable Attribute: SourcePosition.Type", err.Error())
	})
	t.Run("up without type", func(t *testing.T) {
		tmpl := NewTemplate(FIR, nil)
		orient(tmpl, Listener)
		delete(tmpl.Variable("ListenerUp").Attributes, "Type")
		_, err := LoadEntity(Listener, headerOf(t, tmpl))
		assert.Equal(t, "Missing Variable Attribute: ListenerUp.Type", err.Error())
	})
	t.Run("null position", func(t *testing.T) {
		e := &Entity{Kind: Listener}
		err := e.ValidateDimensions(DimensionTable{})
		assert.Equal(t, "ListenerPosition Variable not found", err.Error())
	})
}

func TestPositionVariable(t *testing.T) {
	h := headerOf(t, NewTemplate(FIR, map[string]int{DimR: 2}))
	p := NewPositionVariable(h, "ReceiverPosition")
	assert.Equal(t, "ReceiverPosition", p.Name())
	assert.False(t, p.IsNull())
	assert.Equal(t, []int{2, 3, 1}, p.Shape())
	assert.True(t, p.HasShape(NewDimensionTable(h), Shape{DimR, DimC, DimI}))
	units, ok := p.Units()
	assert.True(t, ok)
	assert.Equal(t, "metre", units)
	typ, ok := p.Type()
	assert.True(t, ok)
	assert.Equal(t, "cartesian", typ)

	null := NewPositionVariable(h, "ReceiverUp")
	assert.True(t, null.IsNull())
	assert.Nil(t, null.Shape())
	_, ok = null.Units()
	assert.False(t, ok)
}
