/*
Copyright © 2026 the OpenVolc authors.
This file is part of OpenVolc.

OpenVolc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

OpenVolc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with OpenVolc.  If not, see <http://www.gnu.org/licenses/>.
*/

package solubility

import (
	"fmt"

	"github.com/ctessum/unit"
)

// Pressures are bars everywhere in this package, but external
// equilibrium engines speak megapascals. The engine boundary carries
// pressures as dimensioned SI quantities so that a mismatched unit is
// caught by a dimension check instead of being silently misread.

// pressureDims are the SI base dimensions of pressure (kg m⁻¹ s⁻²).
var pressureDims = unit.Dimensions{
	unit.MassDim:   1,
	unit.LengthDim: -1,
	unit.TimeDim:   -2,
}

const (
	pascalsPerBar = 1.0e5
	pascalsPerMPa = 1.0e6
)

// Bars wraps a pressure given in bars as a dimensioned quantity.
func Bars(v float64) *unit.Unit { return unit.New(v*pascalsPerBar, pressureDims) }

// MPa wraps a pressure given in megapascals as a dimensioned quantity.
func MPa(v float64) *unit.Unit { return unit.New(v*pascalsPerMPa, pressureDims) }

// InBars unwraps p as bars, erroring unless p carries pressure
// dimensions.
func InBars(p *unit.Unit) (float64, error) {
	if err := p.Check(pressureDims); err != nil {
		return 0, &InputError{Message: fmt.Sprintf("not a pressure: %v", err)}
	}
	return p.Value() / pascalsPerBar, nil
}

// InMPa unwraps p as megapascals, erroring unless p carries pressure
// dimensions.
func InMPa(p *unit.Unit) (float64, error) {
	if err := p.Check(pressureDims); err != nil {
		return 0, &InputError{Message: fmt.Sprintf("not a pressure: %v", err)}
	}
	return p.Value() / pascalsPerMPa, nil
}

// BarsToMPa converts a pressure from bars to megapascals.
func BarsToMPa(bars float64) float64 { return Bars(bars).Value() / pascalsPerMPa }

// MPaToBars converts a pressure from megapascals to bars.
func MPaToBars(mpa float64) float64 { return MPa(mpa).Value() / pascalsPerBar }
