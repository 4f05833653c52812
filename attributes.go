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

// AttributeSpec describes one global attribute of a SOFA file.
type AttributeSpec struct {
	Name       string
	Required   bool
	ReadOnly   bool
	HasDefault bool
	Default    string // Empty unless HasDefault.
}

// AttributeSchema is the fixed table of recognized global attributes.
// Entries are sorted by name, which is also the order in which the
// presence of required attributes is checked.
type AttributeSchema struct {
	specs []AttributeSpec
	index map[string]int
}

// DefaultSchema is the attribute schema of this package's API.
var DefaultSchema = NewAttributeSchema(DefaultAPI)

// NewAttributeSchema returns the attribute schema with version-like
// defaults taken from api.
func NewAttributeSchema(api API) *AttributeSchema {
	const (
		req = true
		opt = false
		ro  = true
		rw  = false
	)
	def := func(name string, required, readOnly bool, value string) AttributeSpec {
		return AttributeSpec{Name: name, Required: required, ReadOnly: readOnly, HasDefault: true, Default: value}
	}
	nodef := func(name string, required, readOnly bool) AttributeSpec {
		return AttributeSpec{Name: name, Required: required, ReadOnly: readOnly}
	}
	s := &AttributeSchema{
		specs: []AttributeSpec{
			def("APIName", req, ro, api.Name),
			def("APIVersion", req, ro, api.Version()),
			nodef("ApplicationName", opt, rw),
			nodef("ApplicationVersion", opt, rw),
			nodef("AuthorContact", req, rw),
			nodef("Comment", opt, rw),
			def("Conventions", req, ro, "SOFA"),
			def("DataType", req, rw, string(FIR)),
			nodef("DateCreated", req, rw),
			nodef("DateModified", req, rw),
			nodef("EmitterDescription", opt, rw),
			nodef("EmitterShortName", opt, rw),
			nodef("History", opt, rw),
			def("License", req, rw, "No license provided, ask the author for permission."),
			nodef("ListenerDescription", opt, rw),
			nodef("ListenerShortName", opt, rw),
			nodef("Organization", req, rw),
			nodef("Origin", opt, rw),
			nodef("ReceiverDescription", opt, rw),
			nodef("ReceiverShortName", opt, rw),
			nodef("References", opt, rw),
			nodef("RoomDescription", opt, rw),
			nodef("RoomLocation", opt, rw),
			nodef("RoomShortName", opt, rw),
			def("RoomType", req, rw, "free field"),
			def("SOFAConventions", req, ro, SimpleFreeFieldHRIR.Name),
			def("SOFAConventionsVersion", req, ro, SimpleFreeFieldHRIR.VersionString()),
			nodef("SourceDescription", opt, rw),
			nodef("SourceShortName", opt, rw),
			nodef("Title", req, rw),
			def("Version", req, ro, api.SpecificationsVersion()),
		},
	}
	s.index = make(map[string]int, len(s.specs))
	for i, a := range s.specs {
		s.index[a.Name] = i
	}
	return s
}

// Specs returns a copy of the schema entries.
func (s *AttributeSchema) Specs() []AttributeSpec {
	return append([]AttributeSpec(nil), s.specs...)
}

// Names returns the names of all recognized attributes.
func (s *AttributeSchema) Names() []string {
	o := make([]string, len(s.specs))
	for i, a := range s.specs {
		o[i] = a.Name
	}
	return o
}

// RequiredNames returns the names of the required attributes.
func (s *AttributeSchema) RequiredNames() []string {
	var o []string
	for _, a := range s.specs {
		if a.Required {
			o = append(o, a.Name)
		}
	}
	return o
}

// Lookup returns the entry for name, failing with UnknownAttribute.
func (s *AttributeSchema) Lookup(name string) (AttributeSpec, error) {
	i, ok := s.index[name]
	if !ok {
		return AttributeSpec{}, newError(UnknownAttribute, name, "Attribute not known: %s", name)
	}
	return s.specs[i], nil
}

// IsRequired returns whether attribute name must be present.
func (s *AttributeSchema) IsRequired(name string) (bool, error) {
	a, err := s.Lookup(name)
	return a.Required, err
}

// IsReadOnly returns whether attribute name is read-only.
func (s *AttributeSchema) IsReadOnly(name string) (bool, error) {
	a, err := s.Lookup(name)
	return a.ReadOnly, err
}

// HasDefault returns whether attribute name has a default value.
func (s *AttributeSchema) HasDefault(name string) (bool, error) {
	a, err := s.Lookup(name)
	return a.HasDefault, err
}

// DefaultValue returns the default value of attribute name, or "" if it
// has none.
func (s *AttributeSchema) DefaultValue(name string) (string, error) {
	a, err := s.Lookup(name)
	return a.Default, err
}

// checkRequired fails with MissingAttribute for the first required
// attribute absent from ds.
func (s *AttributeSchema) checkRequired(ds *Dataset) error {
	for _, a := range s.specs {
		if a.Required && !ds.HasGlobalAttribute(a.Name) {
			return newError(MissingAttribute, a.Name, "Missing required attribute: %s", a.Name)
		}
	}
	return nil
}
