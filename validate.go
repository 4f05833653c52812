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
	"github.com/sirupsen/logrus"
)

// Validator checks containers against the base SOFA schema and against
// conventions.
//
// The Check methods return the first failure they find as an *Error.
// Validate runs them in a fixed order and stops at the first failure.
// The IsValid methods are the recovery boundary: they log the failure as
// a warning and return false.
type Validator struct {
	// Schema holds the recognized global attributes.
	Schema *AttributeSchema

	// Registry is used to find the convention of a file by the value of
	// its SOFAConventions attribute.
	Registry *Registry

	// Log receives validation warnings.
	Log logrus.FieldLogger
}

// NewValidator returns a validator using the default schema, the default
// convention registry and the standard logger.
func NewValidator() *Validator {
	return &Validator{
		Schema:   DefaultSchema,
		Registry: DefaultRegistry,
		Log:      logrus.StandardLogger(),
	}
}

// IsValid reports whether c passes the base validation, using a default
// Validator.
func IsValid(c Container) bool { return NewValidator().IsValid(c) }

// CheckRequiredAttributes checks that every required attribute is present.
// Attributes are checked in alphabetical order.
func (v *Validator) CheckRequiredAttributes(c Container) error {
	return v.Schema.checkRequired(NewDataset(c))
}

// CheckConventions checks that the Conventions attribute is "SOFA".
func (v *Validator) CheckConventions(c Container) error {
	conv, err := NewDataset(c).GlobalAttribute("Conventions")
	if err != nil {
		return err
	}
	if conv != "SOFA" {
		return newError(InvalidConventionTag, "Conventions", "File convention is not SOFA: %s", conv)
	}
	return nil
}

// CheckDimensions checks that the six canonical dimensions exist and have
// legal sizes.
func (v *Validator) CheckDimensions(c Container) error {
	return checkDimensions(NewDimensionTable(c))
}

// CheckEntity checks the position, up and view variables of entity kind k.
func (v *Validator) CheckEntity(k EntityKind, c Container) error {
	e, err := LoadEntity(k, c)
	if err != nil {
		return err
	}
	return e.ValidateDimensions(NewDimensionTable(c))
}

// CheckListener checks the ListenerPosition, ListenerUp and ListenerView variables.
func (v *Validator) CheckListener(c Container) error { return v.CheckEntity(Listener, c) }

// CheckSource checks the SourcePosition, SourceUp and SourceView variables.
func (v *Validator) CheckSource(c Container) error { return v.CheckEntity(Source, c) }

// CheckReceiver checks the ReceiverPosition, ReceiverUp and ReceiverView variables.
func (v *Validator) CheckReceiver(c Container) error { return v.CheckEntity(Receiver, c) }

// CheckEmitter checks the EmitterPosition, EmitterUp and EmitterView variables.
func (v *Validator) CheckEmitter(c Container) error { return v.CheckEntity(Emitter, c) }

// CheckData checks the data variables against the layout selected by the
// DataType attribute.
func (v *Validator) CheckData(c Container) error {
	ds := NewDataset(c)
	dt, err := ds.DataType()
	if err != nil {
		return err
	}
	return dt.Check(ds)
}

type stage struct {
	check     func(Container) error
	needsDims bool
}

func (v *Validator) stages() []stage {
	return []stage{
		{check: v.CheckRequiredAttributes},
		{check: v.CheckConventions},
		{check: v.CheckDimensions},
		{check: v.CheckListener, needsDims: true},
		{check: v.CheckSource, needsDims: true},
		{check: v.CheckReceiver, needsDims: true},
		{check: v.CheckEmitter, needsDims: true},
		{check: v.CheckData, needsDims: true},
	}
}

// Validate runs the base validation and returns the first failure.
func (v *Validator) Validate(c Container) error {
	for _, s := range v.stages() {
		if err := s.check(c); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll runs every stage of the base validation and returns all
// failures in order. All missing required attributes are reported.
// Entity and data checks are skipped when the dimensions are invalid.
// Unlike Validate, it does not stop at the first failure.
func (v *Validator) ValidateAll(c Container) []error {
	var errs []error
	ds := NewDataset(c)
	for _, a := range v.Schema.specs {
		if a.Required && !ds.HasGlobalAttribute(a.Name) {
			errs = append(errs, newError(MissingAttribute, a.Name, "Missing required attribute: %s", a.Name))
		}
	}
	dimsOK := true
	for _, s := range v.stages()[1:] {
		if s.needsDims && !dimsOK {
			continue
		}
		err := s.check(c)
		if err == nil {
			continue
		}
		if KindOf(err) == MissingAttribute {
			// Already reported above.
			continue
		}
		if KindOf(err) == DimensionNotFound || KindOf(err) == InvalidDimensionSize {
			dimsOK = false
		}
		errs = append(errs, err)
	}
	return errs
}

// IsValid reports whether c passes the base validation. A failure is
// logged as a warning.
func (v *Validator) IsValid(c Container) bool {
	if err := v.Validate(c); err != nil {
		v.warn(err, nil)
		return false
	}
	return true
}

// ValidateConvention runs the base validation and then the checks of conv.
func (v *Validator) ValidateConvention(c Container, conv *Convention) error {
	if err := v.Validate(c); err != nil {
		return err
	}
	return conv.Check(NewDataset(c))
}

// IsValidConvention reports whether c conforms to conv. A failure is
// logged as a warning.
func (v *Validator) IsValidConvention(c Container, conv *Convention) bool {
	if err := v.Validate(c); err != nil {
		v.warn(err, nil)
		return false
	}
	if err := conv.Check(NewDataset(c)); err != nil {
		v.warn(err, conv)
		return false
	}
	return true
}

// IsValidAs reports whether c conforms to the convention named by its
// SOFAConventions attribute. Files with a convention that is not in the
// registry only get the base validation.
func (v *Validator) IsValidAs(c Container) bool {
	conv, ok := v.ConventionOf(c)
	if !ok {
		return v.IsValid(c)
	}
	return v.IsValidConvention(c, conv)
}

// ConventionOf returns the registered convention named by the
// SOFAConventions attribute of c.
func (v *Validator) ConventionOf(c Container) (*Convention, bool) {
	name, err := NewDataset(c).Convention()
	if err != nil {
		return nil, false
	}
	conv, ok := v.Registry.Lookup(name)
	if !ok {
		v.log().WithField("convention", name).Debug("sofa: convention not registered")
	}
	return conv, ok
}

func (v *Validator) warn(err error, conv *Convention) {
	f := logrus.Fields{"kind": KindOf(err).String()}
	if e, ok := err.(*Error); ok && e.Name != "" {
		f["name"] = e.Name
	}
	if conv != nil {
		f["convention"] = conv.Name
	}
	v.log().WithFields(f).Warn(err.Error())
}

func (v *Validator) log() logrus.FieldLogger {
	if v.Log == nil {
		return logrus.StandardLogger()
	}
	return v.Log
}
