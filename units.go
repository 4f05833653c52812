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
	"strings"

	"github.com/ctessum/unit"
)

// UnitCategory is the physical quantity that a units string refers to.
type UnitCategory int

// These are the unit categories recognized in SOFA files.
const (
	Distance UnitCategory = iota
	Volume
	Frequency
	SampleCount
	AngularPosition
	Temperature
)

func (u UnitCategory) String() string {
	switch u {
	case Distance:
		return "Distance"
	case Volume:
		return "Volume"
	case Frequency:
		return "Frequency"
	case SampleCount:
		return "SampleCount"
	case AngularPosition:
		return "AngularPosition"
	case Temperature:
		return "Temperature"
	default:
		return "UnknownUnitCategory"
	}
}

// Dimensions returns the SI dimensions of quantities in category u.
// AngularPosition is the composite (angle, angle, length) used by
// spherical coordinates.
func (u UnitCategory) Dimensions() unit.Dimensions {
	switch u {
	case Distance:
		return unit.Meter
	case Volume:
		return unit.Meter3
	case Frequency:
		return unit.Herz
	case SampleCount:
		return unit.Dimless
	case AngularPosition:
		return unit.Dimensions{unit.AngleDim: 2, unit.LengthDim: 1}
	case Temperature:
		return unit.Kelvin
	default:
		return nil
	}
}

// unitTable maps lower-case units strings to their category.
var unitTable map[string]UnitCategory

func init() {
	unitTable = map[string]UnitCategory{
		"metres": Distance,
		"meters": Distance,
		"metre":  Distance,
		"meter":  Distance,

		"cubic meter":  Volume,
		"cubic meters": Volume,
		"cubic metre":  Volume,
		"cubic metres": Volume,

		"hertz": Frequency,

		"samples": SampleCount,

		"kelvin":         Temperature,
		"degree kelvin":  Temperature,
		"degrees kelvin": Temperature,
	}

	// Spherical positions are written as "degree, degree, metre" with
	// varying separators and plurals.
	for _, angle := range []string{"degree", "degrees"} {
		for _, dist := range []string{"meter", "metre", "meters", "metres"} {
			for _, sep := range []string{", ", ",", " "} {
				unitTable[angle+sep+angle+sep+dist] = AngularPosition
			}
		}
	}
}

// ClassifyUnit returns the category of the units string s.
// Matching is case-insensitive. Unknown strings fail with UnknownUnit.
func ClassifyUnit(s string) (UnitCategory, error) {
	c, ok := unitTable[strings.ToLower(s)]
	if !ok {
		return 0, newError(UnknownUnit, s, "Unit name not known: %s", s)
	}
	return c, nil
}

// IsValidUnit returns whether s is a known units string.
func IsValidUnit(s string) bool {
	_, err := ClassifyUnit(s)
	return err == nil
}

// IsDistanceUnit returns whether s is a unit of length.
func IsDistanceUnit(s string) (bool, error) {
	c, err := ClassifyUnit(s)
	if err != nil {
		return false, err
	}
	return c.Dimensions().Matches(unit.Meter), nil
}

// IsFrequencyUnit returns whether s is a unit of frequency.
func IsFrequencyUnit(s string) (bool, error) {
	c, err := ClassifyUnit(s)
	if err != nil {
		return false, err
	}
	return c.Dimensions().Matches(unit.Herz), nil
}

// IsTimeUnit returns whether s is a unit of discrete time (samples).
func IsTimeUnit(s string) (bool, error) {
	c, err := ClassifyUnit(s)
	if err != nil {
		return false, err
	}
	return c == SampleCount, nil
}
