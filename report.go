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
	"sort"
	"strings"
)

// EntityReport describes one positional entity of a file.
type EntityReport struct {
	Kind           EntityKind
	Present        bool
	Units, Type    string
	Shape          []int
	HasUp, HasView bool
}

// Report summarizes the structure and validity of a file.
type Report struct {
	// RequiredAttributes lists the required attributes of the schema, and
	// MissingAttributes those of them that the file lacks.
	RequiredAttributes []string
	MissingAttributes  []string

	Attributes map[string]string
	Dimensions DimensionTable
	Entities   []EntityReport

	// DataType is the layout branch taken by the data check.
	DataType DataType

	// Convention is the value of SOFAConventions and ConventionVersion the
	// version of the matching registered convention, if there is one.
	Convention        string
	ConventionVersion string

	// Valid and Error give the result of the base validation.
	Valid bool
	Error string

	// ConventionValid and ConventionError give the result of the
	// convention checks. They are only set if the base validation passed
	// and the convention is registered.
	ConventionValid bool
	ConventionError string

	// Errors holds every base validation failure if the report was made
	// with all set.
	Errors []string
}

// Inspect returns a report for c.
func (v *Validator) Inspect(c Container, all bool) *Report {
	ds := NewDataset(c)
	r := &Report{
		RequiredAttributes: v.Schema.RequiredNames(),
		Attributes:         ds.GlobalAttributes(),
		Dimensions:         ds.DimensionTable(),
	}
	for _, a := range r.RequiredAttributes {
		if !ds.HasGlobalAttribute(a) {
			r.MissingAttributes = append(r.MissingAttributes, a)
		}
	}
	for _, k := range EntityKinds {
		p := NewPositionVariable(c, k.PositionName())
		e := EntityReport{
			Kind:    k,
			Present: !p.IsNull(),
			Shape:   p.Shape(),
			HasUp:   ds.HasVariable(k.UpName()),
			HasView: ds.HasVariable(k.ViewName()),
		}
		e.Units, _ = p.Units()
		e.Type, _ = p.Type()
		r.Entities = append(r.Entities, e)
	}
	if dt, err := ds.DataType(); err == nil {
		r.DataType = dt
	}
	r.Convention, _ = ds.Convention()

	if err := v.Validate(c); err != nil {
		r.Error = err.Error()
	} else {
		r.Valid = true
	}
	if conv, ok := v.Registry.Lookup(r.Convention); ok {
		r.ConventionVersion = conv.VersionString()
		if r.Valid {
			if err := conv.Check(ds); err != nil {
				r.ConventionError = err.Error()
			} else {
				r.ConventionValid = true
			}
		}
	}
	if all {
		for _, err := range v.ValidateAll(c) {
			r.Errors = append(r.Errors, err.Error())
		}
	}
	return r
}

// Write writes a human-readable form of r to w.
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintln(&b, "Global Attributes:")
	names := make([]string, 0, len(r.Attributes))
	for n := range r.Attributes {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&b, "\t- %s: %s\n", n, r.Attributes[n])
	}
	fmt.Fprintln(&b, "Dimensions:")
	for _, d := range CanonicalDimensions {
		if n, ok := r.Dimensions[d]; ok {
			fmt.Fprintf(&b, "\t- %s: %d\n", d, n)
		} else {
			fmt.Fprintf(&b, "\t- %s: missing\n", d)
		}
	}
	fmt.Fprintln(&b, "Entities:")
	for _, e := range r.Entities {
		if !e.Present {
			fmt.Fprintf(&b, "\t- %s: missing\n", e.Kind)
			continue
		}
		fmt.Fprintf(&b, "\t- %s: shape %v, units %q, type %q, up %t, view %t\n",
			e.Kind, e.Shape, e.Units, e.Type, e.HasUp, e.HasView)
	}
	fmt.Fprintf(&b, "DataType: %s\n", r.DataType)
	if r.ConventionVersion != "" {
		fmt.Fprintf(&b, "Convention: %s %s\n", r.Convention, r.ConventionVersion)
	} else {
		fmt.Fprintf(&b, "Convention: %s (not registered)\n", r.Convention)
	}
	if len(r.MissingAttributes) > 0 {
		fmt.Fprintf(&b, "Missing required attributes: %s\n", strings.Join(r.MissingAttributes, ", "))
	}
	if r.Valid {
		fmt.Fprintln(&b, "Valid SOFA file")
	} else {
		fmt.Fprintf(&b, "Invalid SOFA file: %s\n", r.Error)
	}
	if r.ConventionVersion != "" && r.Valid {
		if r.ConventionValid {
			fmt.Fprintf(&b, "Valid %s file\n", r.Convention)
		} else {
			fmt.Fprintf(&b, "Invalid %s file: %s\n", r.Convention, r.ConventionError)
		}
	}
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "\t* %s\n", e)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
