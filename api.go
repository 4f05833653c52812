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

// API identifies the software that writes SOFA files and the SOFA
// specification version it implements. It is the single source of the
// version-like attribute defaults.
type API struct {
	Name string

	Major, Minor, Release int

	// SpecMajor and SpecMinor give the version of the SOFA (AES69)
	// specification.
	SpecMajor, SpecMinor int

	Copyright string
}

// DefaultAPI describes this package.
var DefaultAPI = API{
	Name:      "sofa",
	Major:     0,
	Minor:     2,
	Release:   0,
	SpecMajor: 1,
	SpecMinor: 0,
	Copyright: "Copyright © 2018 the sofa authors",
}

// Version returns the API version as "major.minor.release".
func (a API) Version() string {
	return fmt.Sprintf("%d.%d.%d", a.Major, a.Minor, a.Release)
}

// SpecificationsVersion returns the SOFA specification version as "major.minor".
func (a API) SpecificationsVersion() string {
	return fmt.Sprintf("%d.%d", a.SpecMajor, a.SpecMinor)
}
