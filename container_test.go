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
	"testing"

	"github.com/ctessum/cdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeString(t *testing.T) {
	tests := []struct {
		val  interface{}
		want string
	}{
		{nil, ""},
		{"SOFA", "SOFA"},
		{[]uint8("abc\x00"), "abc"},
		{[]int32{2}, "2"},
		{[]float64{1.5}, "1.5"},
		{[]int16{1, 2, 3}, "1, 2, 3"},
	}
	for _, test := range tests {
		if got := AttributeString(test.val); got != test.want {
			t.Errorf("%#v: %q != %q", test.val, got, test.want)
		}
	}
}

func TestDataset(t *testing.T) {
	h := cdf.NewHeader([]string{"M", "C"}, []int{4, 3})
	h.AddAttribute("", "AmbisonicsOrder", []int32{1})
	h.AddAttribute("", "DataType", "TF")
	h.AddVariable("ListenerUp", []string{"M", "C"}, []float64{0})
	h.AddAttribute("ListenerUp", "Units", "metre")
	ds := NewDataset(h)
	assert.Equal(t, ds, NewDataset(ds))

	v, err := ds.GlobalAttribute("AmbisonicsOrder")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
	_, err = ds.GlobalAttribute("Title")
	assert.Equal(t, "Attribute not found: Title", err.Error())

	dt, err := ds.DataType()
	require.NoError(t, err)
	assert.Equal(t, TF, dt)
	assert.True(t, dt.Known())
	assert.False(t, DataType("IIR").Known())

	_, err = ds.Convention()
	assert.Equal(t, MissingAttribute, KindOf(err))

	shape, err := ds.VariableShape("ListenerUp")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, shape)
	dims, err := ds.VariableDimensions("ListenerUp")
	require.NoError(t, err)
	assert.Equal(t, []string{"M", "C"}, dims)
	_, err = ds.VariableShape("ListenerView")
	assert.Equal(t, "Variable not found: ListenerView", err.Error())

	units, ok, err := ds.VariableAttribute("ListenerUp", "Units")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "metre", units)
	_, ok, err = ds.VariableAttribute("ListenerUp", "Type")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, ds.HasListenerUp())
	assert.False(t, ds.HasListenerView())
	assert.False(t, ds.HasEmitterUp())

	n, err := ds.DimensionSize("M")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
