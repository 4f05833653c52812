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

import "strings"

// The canonical SOFA dimension symbols.
const (
	DimM = "M" // measurements
	DimN = "N" // samples per measurement
	DimR = "R" // receivers
	DimE = "E" // emitters
	DimI = "I" // singleton, always 1
	DimC = "C" // coordinates, always 3
)

// CanonicalDimensions lists the dimensions every SOFA file must define,
// in the order they are checked.
var CanonicalDimensions = []string{DimM, DimN, DimR, DimE, DimI, DimC}

// DimensionTable holds dimension sizes by symbol.
type DimensionTable map[string]int

// NewDimensionTable reads the dimensions of c.
func NewDimensionTable(c Container) DimensionTable {
	names := c.Dimensions("")
	lengths := c.Lengths("")
	t := make(DimensionTable, len(names))
	for i, n := range names {
		if i < len(lengths) {
			t[n] = lengths[i]
		}
	}
	return t
}

// SizeOf returns the size of dimension symbol.
func (t DimensionTable) SizeOf(symbol string) (int, error) {
	n, ok := t[symbol]
	if !ok {
		return 0, newError(DimensionNotFound, symbol, "Dimension not found: %s", symbol)
	}
	return n, nil
}

// Exists returns whether dimension symbol exists.
func (t DimensionTable) Exists(symbol string) bool {
	_, ok := t[symbol]
	return ok
}

// Matches returns whether shape has exactly the sizes that s refers to,
// in the same order. A symbol missing from t never matches.
func (t DimensionTable) Matches(shape []int, s Shape) bool {
	if len(shape) != len(s) {
		return false
	}
	for i, sym := range s {
		n, ok := t[sym]
		if !ok || shape[i] != n {
			return false
		}
	}
	return true
}

// MatchesAny returns whether shape matches one of the given shapes.
func (t DimensionTable) MatchesAny(shape []int, shapes ...Shape) bool {
	for _, s := range shapes {
		if t.Matches(shape, s) {
			return true
		}
	}
	return false
}

// Shape is an ordered tuple of dimension symbols.
type Shape []string

func (s Shape) String() string {
	return "[" + strings.Join(s, ",") + "]"
}

// shapesString renders alternatives as "[I,C] or [M,C]".
func shapesString(shapes []Shape) string {
	parts := make([]string, len(shapes))
	for i, s := range shapes {
		parts[i] = s.String()
	}
	return strings.Join(parts, " or ")
}

// checkDimensions checks that the canonical dimensions exist and have
// legal sizes.
func checkDimensions(t DimensionTable) error {
	for _, d := range CanonicalDimensions {
		if _, err := t.SizeOf(d); err != nil {
			return err
		}
	}
	for _, d := range CanonicalDimensions {
		n := t[d]
		var ok bool
		switch d {
		case DimI:
			ok = n == 1
		case DimC:
			ok = n == 3
		default:
			ok = n >= 1
		}
		if !ok {
			return newError(InvalidDimensionSize, d, "Incorrect dimension size for %s: %d", d, n)
		}
	}
	return nil
}
