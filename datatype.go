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

import "fmt"

// DataType is the value of the DataType attribute, which selects the
// layout of the data variables.
type DataType string

// These are the supported data layouts.
const (
	FIR  DataType = "FIR"  // finite impulse responses
	FIRE DataType = "FIRE" // finite impulse responses per emitter
	SOS  DataType = "SOS"  // second-order sections
	TF   DataType = "TF"   // transfer functions
)

// DataTypes lists the supported data layouts.
var DataTypes = []DataType{FIR, FIRE, SOS, TF}

// Known returns whether d is a supported layout.
func (d DataType) Known() bool {
	_, ok := layoutChecks[d]
	return ok
}

// Check checks the data variables of ds against layout d.
func (d DataType) Check(ds *Dataset) error {
	check, ok := layoutChecks[d]
	if !ok {
		return newError(UnknownDataType, "DataType", "DataType not known: %s", string(d))
	}
	return check(ds, ds.DimensionTable())
}

var layoutChecks = map[DataType]func(*Dataset, DimensionTable) error{
	FIR: func(ds *Dataset, t DimensionTable) error {
		return checkImpulseResponse(ds, t, Shape{DimM, DimR, DimN},
			[]Shape{{DimI, DimR}, {DimM, DimR}})
	},
	FIRE: func(ds *Dataset, t DimensionTable) error {
		return checkImpulseResponse(ds, t, Shape{DimM, DimR, DimE, DimN},
			[]Shape{{DimI, DimR, DimE}, {DimM, DimR, DimE}})
	},
	SOS: func(ds *Dataset, t DimensionTable) error {
		return checkImpulseResponse(ds, t, Shape{DimM, DimR, DimN},
			[]Shape{{DimI, DimR}, {DimM, DimR}})
	},
	TF: checkTransferFunction,
}

// checkImpulseResponse checks Data.IR, Data.SamplingRate and Data.Delay.
func checkImpulseResponse(ds *Dataset, t DimensionTable, ir Shape, delay []Shape) error {
	if err := checkDataVariable(ds, t, "Data.IR", ir); err != nil {
		return err
	}
	if err := checkDataVariable(ds, t, "Data.SamplingRate", Shape{DimI}, Shape{DimM}); err != nil {
		return err
	}
	if err := checkFrequencyUnits(ds, "Data.SamplingRate"); err != nil {
		return err
	}
	return checkDataVariable(ds, t, "Data.Delay", delay...)
}

// checkTransferFunction checks Data.Real, Data.Imag and the frequency
// variable N.
func checkTransferFunction(ds *Dataset, t DimensionTable) error {
	for _, name := range []string{"Data.Real", "Data.Imag"} {
		if err := checkDataVariable(ds, t, name, Shape{DimM, DimR, DimN}); err != nil {
			return err
		}
	}
	if err := checkDataVariable(ds, t, "N", Shape{DimN}); err != nil {
		return err
	}
	return checkFrequencyUnits(ds, "N")
}

// checkDataVariable checks that variable name exists and matches one of shapes.
func checkDataVariable(ds *Dataset, t DimensionTable, name string, shapes ...Shape) error {
	shape, err := ds.VariableShape(name)
	if err != nil {
		return newError(MissingVariable, name, "Missing %s Variable", name)
	}
	if !t.MatchesAny(shape, shapes...) {
		return &Error{
			Kind:     InvalidShape,
			Name:     name,
			Message:  fmt.Sprintf("Incorrect %s dimensions: %v. Expected %s", name, shape, shapesString(shapes)),
			Actual:   append([]int(nil), shape...),
			Expected: shapes,
		}
	}
	return nil
}

// checkFrequencyUnits checks that variable name has a Units attribute
// of the Frequency category.
func checkFrequencyUnits(ds *Dataset, name string) error {
	units, ok, err := ds.VariableAttribute(name, "Units")
	if err != nil {
		return err
	}
	if !ok || units == "" {
		return newError(MissingVariableAttribute, name, "Missing Attribute %s.Units", name)
	}
	isFreq, err := IsFrequencyUnit(units)
	if err != nil {
		return newError(UnknownUnit, name, "Attribute %s.Units is not a known unit: %s", name, units)
	}
	if !isFreq {
		return newError(MissingVariableAttribute, name,
			"Attribute %s.Units is not a frequency unit: %s", name, units)
	}
	return nil
}
