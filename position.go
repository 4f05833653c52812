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

// PositionVariable is a possibly-absent position, up or view variable.
// The zero value is an absent variable.
type PositionVariable struct {
	c       Container
	name    string
	present bool
}

// NewPositionVariable looks up the variable name in c. If there is no such
// variable, the result is null.
func NewPositionVariable(c Container, name string) PositionVariable {
	p := PositionVariable{c: c, name: name}
	for _, v := range c.Variables() {
		if v == name {
			p.present = true
			break
		}
	}
	return p
}

// Name returns the variable name.
func (p PositionVariable) Name() string { return p.name }

// IsNull returns whether the variable is absent.
func (p PositionVariable) IsNull() bool { return !p.present }

// Shape returns the dimension lengths of the variable, or nil if it
// is absent.
func (p PositionVariable) Shape() []int {
	if p.IsNull() {
		return nil
	}
	return p.c.Lengths(p.name)
}

// HasShape returns whether the variable has exactly the sizes that s
// refers to in t, in the same order.
func (p PositionVariable) HasShape(t DimensionTable, s Shape) bool {
	if p.IsNull() {
		return false
	}
	return t.Matches(p.Shape(), s)
}

func (p PositionVariable) attribute(a string) (string, bool) {
	if p.IsNull() {
		return "", false
	}
	v := p.c.GetAttribute(p.name, a)
	if v == nil {
		return "", false
	}
	s := AttributeString(v)
	return s, s != ""
}

// Units returns the Units attribute of the variable.
func (p PositionVariable) Units() (string, bool) { return p.attribute("Units") }

// Type returns the Type attribute (coordinate system) of the variable.
func (p PositionVariable) Type() (string, bool) { return p.attribute("Type") }

// EntityKind is one of the four positional entities.
type EntityKind int

// These are the positional entities of a SOFA file.
const (
	Listener EntityKind = iota
	Source
	Receiver
	Emitter
)

// EntityKinds lists the entities in the order they are validated.
var EntityKinds = []EntityKind{Listener, Source, Receiver, Emitter}

func (k EntityKind) String() string {
	switch k {
	case Listener:
		return "Listener"
	case Source:
		return "Source"
	case Receiver:
		return "Receiver"
	case Emitter:
		return "Emitter"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// Shapes returns the two legal shapes of the position, up and view
// variables of entities of kind k.
func (k EntityKind) Shapes() []Shape {
	switch k {
	case Receiver:
		return []Shape{{DimR, DimC, DimI}, {DimR, DimC, DimM}}
	case Emitter:
		return []Shape{{DimE, DimC, DimI}, {DimE, DimC, DimM}}
	default:
		return []Shape{{DimI, DimC}, {DimM, DimC}}
	}
}

// PositionName returns the name of the position variable, e.g. "ListenerPosition".
func (k EntityKind) PositionName() string { return k.String() + "Position" }

// UpName returns the name of the up variable, e.g. "ListenerUp".
func (k EntityKind) UpName() string { return k.String() + "Up" }

// ViewName returns the name of the view variable, e.g. "ListenerView".
func (k EntityKind) ViewName() string { return k.String() + "View" }

// Entity is a listener, source, receiver or emitter. Up and View are
// optional but must be both present or both absent.
type Entity struct {
	Kind     EntityKind
	Position PositionVariable
	Up       PositionVariable
	View     PositionVariable
}

// NewEntity creates an entity, failing with InvalidEntityState if only one
// of up and view is present.
func NewEntity(kind EntityKind, position, up, view PositionVariable) (*Entity, error) {
	e := &Entity{Kind: kind, Position: position, Up: up, View: view}
	if e.HasUp() && !e.HasView() {
		return nil, newError(InvalidEntityState, kind.UpName(),
			"%s exists but not %s", kind.UpName(), kind.ViewName())
	}
	if e.HasView() && !e.HasUp() {
		return nil, newError(InvalidEntityState, kind.ViewName(),
			"%s exists but not %s", kind.ViewName(), kind.UpName())
	}
	return e, nil
}

// LoadEntity reads the entity of kind k from c. The position variable must
// exist, and every present variable must carry Units and Type attributes.
func LoadEntity(k EntityKind, c Container) (*Entity, error) {
	vars := make([]PositionVariable, 3)
	for i, name := range []string{k.PositionName(), k.UpName(), k.ViewName()} {
		p := NewPositionVariable(c, name)
		if p.IsNull() {
			if i == 0 {
				return nil, newError(MissingVariable, name, "Missing Variable: %s", name)
			}
			vars[i] = p
			continue
		}
		if _, ok := p.Units(); !ok {
			return nil, newError(MissingVariableAttribute, name, "Missing Variable Attribute: %s.Units", name)
		}
		if _, ok := p.Type(); !ok {
			return nil, newError(MissingVariableAttribute, name, "Missing Variable Attribute: %s.Type", name)
		}
		vars[i] = p
	}
	return NewEntity(k, vars[0], vars[1], vars[2])
}

// HasUp returns whether the up variable is present.
func (e *Entity) HasUp() bool { return !e.Up.IsNull() }

// HasView returns whether the view variable is present.
func (e *Entity) HasView() bool { return !e.View.IsNull() }

// ValidateDimensions checks the shapes of the position variable and, when
// present, the up and view variables against the legal shapes for the
// entity kind.
func (e *Entity) ValidateDimensions(t DimensionTable) error {
	if e.Position.IsNull() {
		return newError(MissingVariable, e.Kind.PositionName(),
			"%s Variable not found", e.Kind.PositionName())
	}
	shapes := e.Kind.Shapes()
	for _, p := range []PositionVariable{e.Position, e.Up, e.View} {
		if p.IsNull() {
			continue
		}
		if !t.MatchesAny(p.Shape(), shapes...) {
			return &Error{
				Kind: InvalidShape,
				Name: p.Name(),
				Message: fmt.Sprintf("Invalid %s Dimensions for %s (should be %s): %v",
					p.Name(), e.Kind, shapesString(shapes), p.Shape()),
				Actual:   append([]int(nil), p.Shape()...),
				Expected: shapes,
			}
		}
	}
	return nil
}
