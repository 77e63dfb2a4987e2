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

// Package moore implements the H2O solubility law of Moore et al.
// (1998), a van't Hoff expression with compositional pressure terms:
//
//	2·ln(XH2O) = a/T + Σ bᵢ·Xᵢ·(P/T) + c·ln(fH2O) + d
//
// with pressure and fugacity in bars and temperature in kelvin.
package moore

import (
	"fmt"
	"math"

	"github.com/openvolc/solubility"
)

// Fitted coefficients of Moore et al. (1998).
const (
	coefA    = 2565.0
	coefBAl  = -1.997
	coefBFe  = -0.9275
	coefBNa  = 2.736
	coefC    = 1.171
	coefD    = -14.21
	fe2ToFeO = 0.8998 // wt conversion of Fe2O3 to FeO
)

// Water is the Moore et al. (1998) H2O solubility law.
type Water struct {
	fugacity solubility.FugacityModel
	activity solubility.ActivityModel
}

// NewWater returns the law. A nil fugacity model defaults to the ideal
// gas.
func NewWater(f solubility.FugacityModel) *Water {
	if f == nil {
		f = solubility.IdealGas{}
	}
	return &Water{fugacity: f, activity: solubility.IdealActivity{}}
}

// Species returns H2O.
func (m *Water) Species() solubility.Species { return solubility.H2O }

// Preprocess normalizes the non-volatile oxides onto an anhydrous 100%
// basis.
func (m *Water) Preprocess(c solubility.Composition) solubility.Composition {
	return c.NormalizeAdditionalVolatiles()
}

// DissolvedVolatiles returns the dissolved H2O [wt%] at pressure p
// [bars], temperature tempC [°C], and fluid H2O mole fraction xFluid.
func (m *Water) DissolvedVolatiles(p, tempC float64, c solubility.Composition, xFluid float64) (float64, error) {
	return m.dissolved(p, tempC, m.Preprocess(c), xFluid)
}

func (m *Water) dissolved(p, tempC float64, c solubility.Composition, xFluid float64) (float64, error) {
	if xFluid < 0 || xFluid > 1 {
		return 0, &solubility.InputError{Message: "fluid mole fraction must be in [0,1]"}
	}
	if xFluid == 0 {
		return 0, nil
	}
	f, err := m.fugacity.Fugacity(p, tempC, m.activity.Activity(xFluid))
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, nil
	}
	T := tempC + 273.15

	// Total iron as FeO.
	ct := c.Clone()
	ct["FeO"] += fe2ToFeO * ct["Fe2O3"]
	ct["Fe2O3"] = 0
	mol := ct.Anhydrous().MolOxides()

	twoLnX := coefA/T +
		(coefBAl*mol["Al2O3"]+coefBFe*mol["FeO"]+coefBNa*mol["Na2O"])*(p/T) +
		coefC*math.Log(f) + coefD
	x := math.Exp(twoLnX / 2)
	if x >= 1 {
		// The fit extrapolates past a water mole fraction of unity; no
		// melt can hold that much, so the conditions are beyond where
		// the model saturates.
		return 0, &solubility.SaturationError{Message: fmt.Sprintf(
			"Moore model water mole fraction %.3g at %g bars is outside its physical range", x, p)}
	}
	// Oxide-basis mole fraction to wt%.
	mw := 18.015 * x
	return 100 * mw / (mw + (1-x)*c.MeanMolarMassAnhydrous()), nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// H2O content of c is exactly fluid-saturated in pure H2O.
func (m *Water) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	cp := m.Preprocess(c)
	return solubility.InvertSaturation(cp.Get("H2O"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, cp, 1)
	})
}

// CheckCalibration reports the experimental range of the fit and of
// the sub-models.
func (m *Water) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	r := []solubility.CalibrationResult{
		solubility.CheckRange("law:moore-water", "pressure", p, 1, 3000),
		solubility.CheckRange("law:moore-water", "temperature", tempC, 700, 1200),
	}
	r = append(r, m.fugacity.CheckCalibration(p, tempC)...)
	r = append(r, m.activity.CheckCalibration(1)...)
	return r
}
