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
	"sort"
	"sync"
)

// Rule is a convention-specific check. It returns a ConventionMismatch
// error describing the first violation it finds.
type Rule func(ds *Dataset) error

// Convention is a named, versioned specialization of the base SOFA schema.
// A file conforms to a convention if it passes the base validation, its
// DataType and SOFAConventions attributes match, and every rule passes.
type Convention struct {
	Name         string
	Major, Minor int
	DataType     DataType
	Rules        []Rule
}

// VersionString returns the convention version as "major.minor".
func (c *Convention) VersionString() string {
	return fmt.Sprintf("%d.%d", c.Major, c.Minor)
}

// Check applies the convention-specific checks to ds. It does not run the
// base validation.
func (c *Convention) Check(ds *Dataset) error {
	if dt, err := ds.DataType(); err != nil || dt != c.DataType {
		return mismatch("DataType", "DataType is not %s", c.DataType)
	}
	if name, err := ds.Convention(); err != nil || name != c.Name {
		return mismatch("SOFAConventions", "SOFAConventions is not %s", c.Name)
	}
	for _, r := range c.Rules {
		if err := r(ds); err != nil {
			return err
		}
	}
	return nil
}

func mismatch(name, format string, args ...interface{}) *Error {
	return newError(ConventionMismatch, name, format, args...)
}

// RoomType requires the RoomType attribute to equal want.
func RoomType(want string) Rule {
	return func(ds *Dataset) error {
		got, _ := ds.GlobalAttribute("RoomType")
		if got != want {
			return mismatch("RoomType", "RoomType is not %q, got: %q", want, got)
		}
		return nil
	}
}

// GlobalAttributes requires each of the named global attributes.
func GlobalAttributes(names ...string) Rule {
	return func(ds *Dataset) error {
		for _, n := range names {
			if !ds.HasGlobalAttribute(n) {
				return mismatch(n, "Missing required Global Attribute %q", n)
			}
		}
		return nil
	}
}

// VariableAttributes requires variable v to carry each of the named attributes.
func VariableAttributes(v string, names ...string) Rule {
	return func(ds *Dataset) error {
		for _, n := range names {
			if _, ok, _ := ds.VariableAttribute(v, n); !ok {
				return mismatch(v, "%s Attribute %s not found", v, n)
			}
		}
		return nil
	}
}

// Oriented requires the Up and View variables of entity kind k.
func Oriented(k EntityKind) Rule {
	return func(ds *Dataset) error {
		if !ds.HasVariable(k.UpName()) || !ds.HasVariable(k.ViewName()) {
			return mismatch(k.String(), "Mandatory Variables %s and %s not found",
				k.UpName(), k.ViewName())
		}
		return nil
	}
}

// Emitters requires the E dimension to equal n.
func Emitters(n int) Rule {
	return func(ds *Dataset) error {
		e, _ := ds.DimensionSize(DimE)
		if e != n {
			return mismatch(DimE, "Number of emitters (E) should be %d, got %d", n, e)
		}
		return nil
	}
}

// Receivers requires the R dimension to equal n.
func Receivers(n int) Rule {
	return func(ds *Dataset) error {
		r, _ := ds.DimensionSize(DimR)
		if r != n {
			return mismatch(DimR, "Number of receivers (R) should be %d, got %d", n, r)
		}
		return nil
	}
}

// EmittersMatchReceivers requires E == R.
func EmittersMatchReceivers(ds *Dataset) error {
	e, _ := ds.DimensionSize(DimE)
	r, _ := ds.DimensionSize(DimR)
	if e != r {
		return mismatch(DimE, "Number of emitters (E) and number of receivers (R) should match, got %d,%d", e, r)
	}
	return nil
}

// These are the built-in conventions.
var (
	AmbisonicsDRIR = &Convention{
		Name: "AmbisonicsDRIR", Major: 0, Minor: 1, DataType: FIRE,
		Rules: []Rule{
			func(ds *Dataset) error {
				if !ds.HasGlobalAttribute("AmbisonicsOrder") {
					return mismatch("AmbisonicsOrder", "Global Attribute AmbisonicsOrder not found")
				}
				return nil
			},
			VariableAttributes("Data.IR", "ChannelOrdering", "Normalization"),
			Oriented(Listener),
			Oriented(Emitter),
		},
	}

	GeneralFIR = &Convention{Name: "GeneralFIR", Major: 1, Minor: 0, DataType: FIR}

	GeneralFIRE = &Convention{Name: "GeneralFIRE", Major: 1, Minor: 0, DataType: FIRE}

	GeneralTF = &Convention{Name: "GeneralTF", Major: 1, Minor: 0, DataType: TF}

	SingleRoomDRIR = &Convention{
		Name: "SingleRoomDRIR", Major: 0, Minor: 3, DataType: FIR,
		Rules: []Rule{
			RoomType("reverberant"),
			GlobalAttributes("RoomDescription"),
			Oriented(Listener),
			Emitters(1),
		},
	}

	SimpleHeadphoneIR = &Convention{
		Name: "SimpleHeadphoneIR", Major: 0, Minor: 2, DataType: FIR,
		Rules: []Rule{
			RoomType("free field"),
			GlobalAttributes("ListenerShortName", "ListenerDescription",
				"SourceDescription", "EmitterDescription", "DatabaseName",
				"SourceModel", "SourceManufacturer", "SourceURI"),
			EmittersMatchReceivers,
		},
	}

	SimpleFreeFieldHRIR = &Convention{
		Name: "SimpleFreeFieldHRIR", Major: 1, Minor: 0, DataType: FIR,
		Rules: []Rule{RoomType("free field"), Emitters(1), Receivers(2)},
	}

	SimpleFreeFieldSOS = &Convention{
		Name: "SimpleFreeFieldSOS", Major: 1, Minor: 0, DataType: SOS,
		Rules: []Rule{RoomType("free field"), Emitters(1), Receivers(2)},
	}

	MultiSpeakerBRIR = &Convention{
		Name: "MultiSpeakerBRIR", Major: 0, Minor: 3, DataType: FIRE,
		Rules: []Rule{Receivers(2), Oriented(Listener)},
	}
)

// Registry maps convention names to conventions. It is safe for
// concurrent use.
type Registry struct {
	mu sync.RWMutex
	m  map[string]*Convention
}

// NewRegistry returns a registry holding conventions.
func NewRegistry(conventions ...*Convention) *Registry {
	r := &Registry{m: make(map[string]*Convention)}
	for _, c := range conventions {
		r.Register(c)
	}
	return r
}

// DefaultRegistry holds the built-in conventions.
var DefaultRegistry = NewRegistry(AmbisonicsDRIR, GeneralFIR, GeneralFIRE,
	GeneralTF, SingleRoomDRIR, SimpleHeadphoneIR, SimpleFreeFieldHRIR,
	SimpleFreeFieldSOS, MultiSpeakerBRIR)

// Register adds c, replacing any convention of the same name.
func (r *Registry) Register(c *Convention) {
	r.mu.Lock()
	r.m[c.Name] = c
	r.mu.Unlock()
}

// Lookup returns the convention called name.
func (r *Registry) Lookup(name string) (*Convention, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.m[name]
	return c, ok
}

// Names returns the sorted names of the registered conventions.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o := make([]string, 0, len(r.m))
	for n := range r.m {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}
