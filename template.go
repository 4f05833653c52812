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
	"io"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/cdf"
)

// Template describes the contents of a SOFA file.
type Template struct {
	// Attributes are the global attributes.
	Attributes map[string]string

	// Dimensions holds the dimension sizes.
	Dimensions map[string]int

	// Unlimited optionally names a dimension that is written as the
	// record dimension. Its size in Dimensions is the number of records.
	Unlimited string

	Variables []VariableTemplate
}

// VariableTemplate describes one variable of a SOFA file.
type VariableTemplate struct {
	Name       string
	Dimensions []string
	Attributes map[string]string

	// Values, if given, must hold one value per element, in row-major
	// order. Variables without values are filled with the NetCDF fill value.
	Values []float64
}

// ReadTemplate decodes a TOML template from r.
func ReadTemplate(r io.Reader) (*Template, error) {
	t := new(Template)
	if _, err := toml.DecodeReader(r, t); err != nil {
		return nil, fmt.Errorf("sofa: reading template: %v", err)
	}
	return t, nil
}

// NewTemplate returns a template for a file with the given layout and
// dimension sizes that passes the base validation. Missing dimensions get
// size 1, except for C which is 3. Required attributes without a default
// are set to placeholder values.
func NewTemplate(dt DataType, dims map[string]int) *Template {
	t := &Template{
		Attributes: make(map[string]string),
		Dimensions: map[string]int{DimC: 3},
	}
	for _, d := range CanonicalDimensions {
		if n, ok := dims[d]; ok {
			t.Dimensions[d] = n
		} else if d != DimC {
			t.Dimensions[d] = 1
		}
	}
	for _, a := range DefaultSchema.Specs() {
		if a.HasDefault {
			t.Attributes[a.Name] = a.Default
		} else if a.Required {
			t.Attributes[a.Name] = "unknown"
		}
	}
	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	t.Attributes["DateCreated"] = now
	t.Attributes["DateModified"] = now
	t.Attributes["DataType"] = string(dt)

	for _, k := range EntityKinds {
		t.Variables = append(t.Variables, VariableTemplate{
			Name:       k.PositionName(),
			Dimensions: k.Shapes()[0],
			Attributes: map[string]string{"Units": "metre", "Type": "cartesian"},
		})
	}
	hertz := func() map[string]string { return map[string]string{"Units": "hertz"} }
	switch dt {
	case FIR, SOS:
		t.Variables = append(t.Variables,
			VariableTemplate{Name: "Data.IR", Dimensions: Shape{DimM, DimR, DimN}},
			VariableTemplate{Name: "Data.SamplingRate", Dimensions: Shape{DimI}, Attributes: hertz(), Values: []float64{48000}},
			VariableTemplate{Name: "Data.Delay", Dimensions: Shape{DimI, DimR}})
	case FIRE:
		t.Variables = append(t.Variables,
			VariableTemplate{Name: "Data.IR", Dimensions: Shape{DimM, DimR, DimE, DimN}},
			VariableTemplate{Name: "Data.SamplingRate", Dimensions: Shape{DimI}, Attributes: hertz(), Values: []float64{48000}},
			VariableTemplate{Name: "Data.Delay", Dimensions: Shape{DimI, DimR, DimE}})
	case TF:
		t.Variables = append(t.Variables,
			VariableTemplate{Name: "Data.Real", Dimensions: Shape{DimM, DimR, DimN}},
			VariableTemplate{Name: "Data.Imag", Dimensions: Shape{DimM, DimR, DimN}},
			VariableTemplate{Name: "N", Dimensions: Shape{DimN}, Attributes: hertz()})
	}
	return t
}

// SetConvention sets the DataType, SOFAConventions and
// SOFAConventionsVersion attributes for conv.
func (t *Template) SetConvention(conv *Convention) {
	if t.Attributes == nil {
		t.Attributes = make(map[string]string)
	}
	t.Attributes["DataType"] = string(conv.DataType)
	t.Attributes["SOFAConventions"] = conv.Name
	t.Attributes["SOFAConventionsVersion"] = conv.VersionString()
}

// Variable returns the variable called name, or nil.
func (t *Template) Variable(name string) *VariableTemplate {
	for i := range t.Variables {
		if t.Variables[i].Name == name {
			return &t.Variables[i]
		}
	}
	return nil
}

// RemoveVariable removes the variable called name, if present.
func (t *Template) RemoveVariable(name string) {
	for i := range t.Variables {
		if t.Variables[i].Name == name {
			t.Variables = append(t.Variables[:i], t.Variables[i+1:]...)
			return
		}
	}
}

// dimensionNames returns the canonical dimensions in order followed by
// any others in alphabetical order.
func (t *Template) dimensionNames() []string {
	var o, extra []string
	for _, d := range CanonicalDimensions {
		if _, ok := t.Dimensions[d]; ok {
			o = append(o, d)
		}
	}
	for d := range t.Dimensions {
		if !isCanonical(d) {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	return append(o, extra...)
}

func isCanonical(d string) bool {
	for _, c := range CanonicalDimensions {
		if c == d {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	o := make([]string, 0, len(m))
	for k := range m {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// check returns an error for templates that cdf would panic on.
func (t *Template) check(record bool) error {
	for d, n := range t.Dimensions {
		if n < 0 {
			return fmt.Errorf("sofa: dimension %s has negative size %d", d, n)
		}
		if n == 0 && !(record && d == t.Unlimited) {
			return fmt.Errorf("sofa: dimension %s has size 0", d)
		}
	}
	if t.Unlimited != "" {
		if _, ok := t.Dimensions[t.Unlimited]; !ok {
			return fmt.Errorf("sofa: unlimited dimension %s is not defined", t.Unlimited)
		}
	}
	seen := make(map[string]bool)
	for _, v := range t.Variables {
		if seen[v.Name] {
			return fmt.Errorf("sofa: variable %s is defined more than once", v.Name)
		}
		seen[v.Name] = true
		n := 1
		for i, d := range v.Dimensions {
			size, ok := t.Dimensions[d]
			if !ok {
				return fmt.Errorf("sofa: variable %s uses undefined dimension %s", v.Name, d)
			}
			if record && d == t.Unlimited && i != 0 {
				return fmt.Errorf("sofa: variable %s: unlimited dimension %s must be outermost", v.Name, d)
			}
			n *= size
		}
		if v.Values != nil && len(v.Values) != n {
			return fmt.Errorf("sofa: variable %s has %d values but its dimensions hold %d", v.Name, len(v.Values), n)
		}
	}
	return nil
}

// Header returns an in-memory header holding the attributes, dimensions
// and variables of t. All dimensions have their full size. The header is
// a Container and can be validated directly.
func (t *Template) Header() (*cdf.Header, error) {
	return t.header(false)
}

func (t *Template) header(record bool) (*cdf.Header, error) {
	if err := t.check(record); err != nil {
		return nil, err
	}
	names := t.dimensionNames()
	lengths := make([]int, len(names))
	for i, d := range names {
		lengths[i] = t.Dimensions[d]
		if record && d == t.Unlimited {
			lengths[i] = 0
		}
	}
	h := cdf.NewHeader(names, lengths)
	for _, a := range sortedKeys(t.Attributes) {
		h.AddAttribute("", a, t.Attributes[a])
	}
	for _, v := range t.Variables {
		h.AddVariable(v.Name, v.Dimensions, []float64{0})
		for _, a := range sortedKeys(v.Attributes) {
			h.AddAttribute(v.Name, a, v.Attributes[a])
		}
	}
	return h, nil
}

// Create writes t to w as a NetCDF classic file.
func Create(w cdf.ReaderWriterAt, t *Template) error {
	record := t.Unlimited != ""
	h, err := t.header(record)
	if err != nil {
		return err
	}
	h.Define()

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return fmt.Errorf("sofa: creating file: %v", err)
	}
	if record {
		for r := 0; r < t.Dimensions[t.Unlimited]; r++ {
			if err := f.FillRecord(r); err != nil {
				return fmt.Errorf("sofa: filling record %d: %v", r, err)
			}
		}
	}
	for _, v := range t.Variables {
		if v.Values == nil {
			if !h.IsRecordVariable(v.Name) {
				if err := f.Fill(v.Name); err != nil {
					return fmt.Errorf("sofa: filling variable %s: %v", v.Name, err)
				}
			}
			continue
		}
		if len(v.Values) == 0 {
			continue
		}
		var start, end []int
		if !h.IsRecordVariable(v.Name) {
			end = h.Lengths(v.Name)
			start = make([]int, len(end))
		}
		if _, err := f.Writer(v.Name, start, end).Write(v.Values); err != nil {
			return fmt.Errorf("sofa: writing variable %s: %v", v.Name, err)
		}
	}
	if ff, ok := w.(*os.File); ok {
		return cdf.UpdateNumRecs(ff)
	}
	return nil
}
