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

// Package allison implements the CO2 solubility law of Allison et al.
// (2019) for alkali-rich mafic magmas. The law depends on CO2 fugacity
// only, with coefficients fitted separately for six volcanic locations,
// and is usable in two forms: a thermodynamic expression
// (van't Hoff pressure correction of an equilibrium constant) or a
// direct power-law fit. All fits are anchored at 1200 °C.
package allison

import (
	"fmt"
	"math"
	"sort"

	"github.com/openvolc/solubility"
)

// Form selects the functional form of the fit.
type Form int

const (
	// Thermodynamic uses XCO3 = fCO2·exp(lnK0)·exp(-ΔV(P-P0)/RT0).
	Thermodynamic Form = iota
	// Power uses CO2 ppm = a·fCO2^b.
	Power
)

// Reference state of the thermodynamic form.
const (
	refP = 1000.0  // bars
	refT = 1473.15 // kelvin (1200 °C)

	singleOMass = 36.594 // mean single-oxygen melt molar mass [g/mol]
	mCO3        = 44.01
)

// location holds both fitted forms for one volcanic locale.
type location struct {
	deltaV float64 // cm³/mol
	lnK0   float64
	a, b   float64 // power-law fit, ppm vs fugacity [bars]
}

var locations = map[string]location{
	"sunset":    {deltaV: 23.41, lnK0: -14.67, a: 1.73, b: 0.96},
	"sfvf":      {deltaV: 21.72, lnK0: -14.87, a: 1.72, b: 0.96},
	"erebus":    {deltaV: 22.92, lnK0: -14.65, a: 2.10, b: 0.94},
	"vesuvius":  {deltaV: 24.42, lnK0: -14.04, a: 2.92, b: 0.94},
	"etna":      {deltaV: 21.59, lnK0: -14.28, a: 2.36, b: 0.94},
	"stromboli": {deltaV: 14.93, lnK0: -14.68, a: 2.62, b: 0.93},
}

// Locations lists the valid location names.
func Locations() []string {
	names := make([]string, 0, len(locations))
	for n := range locations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Carbon is the Allison et al. (2019) CO2 solubility law for one
// location.
type Carbon struct {
	name     string
	loc      location
	form     Form
	fugacity solubility.FugacityModel
	activity solubility.ActivityModel
}

// NewCarbon returns the law for the named location. A nil fugacity
// model defaults to the ideal gas. Unknown locations are an InputError.
func NewCarbon(loc string, form Form, f solubility.FugacityModel) (*Carbon, error) {
	l, ok := locations[loc]
	if !ok {
		return nil, &solubility.InputError{
			Message: fmt.Sprintf("allison: %q is not a fitted location; valid options are %v", loc, Locations()),
		}
	}
	if f == nil {
		f = solubility.IdealGas{}
	}
	return &Carbon{name: loc, loc: l, form: form, fugacity: f, activity: solubility.IdealActivity{}}, nil
}

// Location returns the location name the law was fitted at.
func (m *Carbon) Location() string { return m.name }

// Species returns CO2.
func (m *Carbon) Species() solubility.Species { return solubility.CO2 }

// Preprocess is the identity: the law has no compositional dependence.
func (m *Carbon) Preprocess(c solubility.Composition) solubility.Composition {
	return c.Clone()
}

// DissolvedVolatiles returns the dissolved CO2 [wt%] at pressure p
// [bars] and fluid CO2 mole fraction xFluid. The fits are anchored at
// 1200 °C; tempC enters only the calibration check.
func (m *Carbon) DissolvedVolatiles(p, tempC float64, c solubility.Composition, xFluid float64) (float64, error) {
	return m.dissolved(p, tempC, c, xFluid)
}

func (m *Carbon) dissolved(p, tempC float64, c solubility.Composition, xFluid float64) (float64, error) {
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
	if m.form == Power {
		return m.loc.a * math.Pow(f, m.loc.b) / 1e4, nil
	}
	xCO3 := f * math.Exp(m.loc.lnK0) * math.Exp(-m.loc.deltaV*(p-refP)/(solubility.RGas*refT))
	return 100 * mCO3 * xCO3 / (mCO3*xCO3 + (1-xCO3)*singleOMass), nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// CO2 content of c is exactly fluid-saturated in pure CO2.
func (m *Carbon) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	return solubility.InvertSaturation(c.Get("CO2"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, c, 1)
	})
}

// CheckCalibration reports the experimental range of the fit and of
// the sub-models.
func (m *Carbon) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	name := "law:allison-carbon-" + m.name
	r := []solubility.CalibrationResult{
		solubility.CheckRange(name, "pressure", p, 500, 7000),
		solubility.CheckRange(name, "temperature", tempC, 1200, 1200),
	}
	r = append(r, m.fugacity.CheckCalibration(p, tempC)...)
	r = append(r, m.activity.CheckCalibration(1)...)
	return r
}
