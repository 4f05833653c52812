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
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("reading file: %w", newError(InvalidShape, "Data.IR", "bad shape"))
	if !errors.Is(err, ErrInvalidShape) {
		t.Error("wrapped error should match its kind")
	}
	if errors.Is(err, ErrMissingVariable) {
		t.Error("wrapped error should not match another kind")
	}
	if k := KindOf(err); k != InvalidShape {
		t.Errorf("%v != %v", k, InvalidShape)
	}
	if k := KindOf(errors.New("other")); k != 0 {
		t.Errorf("%v != 0", k)
	}
	if s := ConventionMismatch.String(); s != "ConventionMismatch" {
		t.Errorf("%s != ConventionMismatch", s)
	}
	if s := Kind(99).String(); s != "Kind(99)" {
		t.Errorf("%s != Kind(99)", s)
	}
}
