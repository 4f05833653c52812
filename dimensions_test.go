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
	"testing"

	"github.com/ctessum/cdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionTable(t *testing.T) {
	h := cdf.NewHeader([]string{"M", "N", "R", "E", "I", "C"}, []int{10, 256, 2, 1, 1, 3})
	dt := NewDimensionTable(h)

	n, err := dt.SizeOf(DimN)
	require.NoError(t, err)
	assert.Equal(t, 256, n)
	assert.True(t, dt.Exists(DimR))
	assert.False(t, dt.Exists("Q"))

	_, err = dt.SizeOf("Q")
	assert.True(t, errors.Is(err, ErrDimensionNotFound))
	assert.Equal(t, "Dimension not found: Q", err.Error())

	require.NoError(t, checkDimensions(dt))
}

func TestDimensionTable_Matches(t *testing.T) {
	dt := DimensionTable{"M": 4, "R": 2, "C": 3, "I": 1}
	tests := []struct {
		name  string
		shape []int
		s     Shape
		want  bool
	}{
		{"exact", []int{2, 3, 1}, Shape{DimR, DimC, DimI}, true},
		{"swapped", []int{3, 2, 1}, Shape{DimR, DimC, DimI}, false},
		{"arity", []int{2, 3}, Shape{DimR, DimC, DimI}, false},
		{"missing symbol", []int{2, 3, 1}, Shape{DimR, DimC, DimE}, false},
		{"empty", []int{}, Shape{}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := dt.Matches(test.shape, test.s); got != test.want {
				t.Errorf("%v != %v", got, test.want)
			}
		})
	}
	assert.True(t, dt.MatchesAny([]int{4, 3}, Shape{DimI, DimC}, Shape{DimM, DimC}))
	assert.False(t, dt.MatchesAny([]int{4, 3}))
}

func TestCheckDimensions(t *testing.T) {
	valid := func() DimensionTable {
		return DimensionTable{"M": 1, "N": 1, "R": 1, "E": 1, "I": 1, "C": 3}
	}
	tests := []struct {
		name   string
		modify func(DimensionTable)
		kind   Kind
		msg    string
	}{
		{"missing E", func(d DimensionTable) { delete(d, DimE) }, DimensionNotFound, "Dimension not found: E"},
		{"I=2", func(d DimensionTable) { d[DimI] = 2 }, InvalidDimensionSize, "Incorrect dimension size for I: 2"},
		{"C=2", func(d DimensionTable) { d[DimC] = 2 }, InvalidDimensionSize, "Incorrect dimension size for C: 2"},
		{"M=0", func(d DimensionTable) { d[DimM] = 0 }, InvalidDimensionSize, "Incorrect dimension size for M: 0"},
		{"missing before size", func(d DimensionTable) {
			d[DimM] = 0
			delete(d, DimC)
		}, DimensionNotFound, "Dimension not found: C"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := valid()
			test.modify(d)
			err := checkDimensions(d)
			require.Error(t, err)
			assert.Equal(t, test.kind, KindOf(err))
			assert.Equal(t, test.msg, err.Error())
		})
	}
}

func TestShapeString(t *testing.T) {
	s := shapesString([]Shape{{DimI, DimC}, {DimM, DimC}})
	if s != "[I,C] or [M,C]" {
		t.Errorf("%s != [I,C] or [M,C]", s)
	}
}
