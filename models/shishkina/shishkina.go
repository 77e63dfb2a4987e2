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

// Package shishkina implements the H2O and CO2 solubility laws of
// Shishkina et al. (2014) for mafic melts. The CO2 law is a log-linear
// fit against CO2 fugacity with a compositional term, the π* index of
// network-modifying over network-forming cations; the H2O law is a
// polynomial fit in H2O fugacity with an alkali-cation term. Both fits
// use fugacity in MPa and are insensitive to temperature.
package shishkina

import (
	"math"

	"github.com/openvolc/solubility"
)

// Fitted coefficients of Shishkina et al. (2014).
const (
	// CO2: ln(CO2 ppm) = lnfCoef·ln(fCO2 MPa) + piCoef·π* + intercept.
	lnfCoef   = 1.1500
	piCoef    = 6.9161
	intercept = -1.4260

	// H2O: wt% = a(f)·(Na+K) + b(f), f in MPa.
	a3, a2, a1, a0 = 3.36e-7, -2.33e-4, 0.0711, -1.1309
	b2, b1, b0     = -1.2e-5, 0.0196, 1.1297
)

// Carbon is the Shishkina et al. (2014) CO2 solubility law.
type Carbon struct {
	fugacity solubility.FugacityModel
	activity solubility.ActivityModel
}

// NewCarbon returns the CO2 law. A nil fugacity model defaults to the
// ideal gas.
func NewCarbon(f solubility.FugacityModel) *Carbon {
	if f == nil {
		f = solubility.IdealGas{}
	}
	return &Carbon{fugacity: f, activity: solubility.IdealActivity{}}
}

// Species returns CO2.
func (m *Carbon) Species() solubility.Species { return solubility.CO2 }

// Preprocess normalizes the non-volatile oxides onto an anhydrous
// 100% basis, carrying the volatiles through unchanged.
func (m *Carbon) Preprocess(c solubility.Composition) solubility.Composition {
	return c.NormalizeAdditionalVolatiles()
}

// piStar is the basicity index of Shishkina et al. (2014): the ratio of
// network-modifying to network-forming cations.
func piStar(c solubility.Composition) float64 {
	cat := c.Anhydrous().MolCations()
	former := cat["Si"] + cat["Al"]
	if former == 0 {
		return 0
	}
	return (cat["Ca"] + 0.8*cat["K"] + 0.7*cat["Na"] + 0.4*cat["Mg"] + 0.4*cat["Fe"]) / former
}

// DissolvedVolatiles returns the dissolved CO2 [wt%] at pressure p
// [bars] and fluid CO2 mole fraction xFluid. Temperature does not enter
// the fit.
func (m *Carbon) DissolvedVolatiles(p, tempC float64, c solubility.Composition, xFluid float64) (float64, error) {
	return m.dissolved(p, tempC, m.Preprocess(c), xFluid)
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
	ppm := math.Exp(lnfCoef*math.Log(f/10) + piCoef*piStar(c) + intercept)
	return ppm / 1e4, nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// CO2 content of c is exactly fluid-saturated in pure CO2.
func (m *Carbon) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	cp := m.Preprocess(c)
	return solubility.InvertSaturation(cp.Get("CO2"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, cp, 1)
	})
}

// CheckCalibration reports the experimental range of the fit and of the
// sub-models.
func (m *Carbon) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	r := []solubility.CalibrationResult{
		solubility.CheckRange("law:shishkina-carbon", "pressure", p, 500, 5000),
		solubility.CheckRange("law:shishkina-carbon", "temperature", tempC, 1150, 1250),
	}
	r = append(r, m.fugacity.CheckCalibration(p, tempC)...)
	r = append(r, m.activity.CheckCalibration(1)...)
	return r
}

// Water is the Shishkina et al. (2014) H2O solubility law.
type Water struct {
	fugacity solubility.FugacityModel
	activity solubility.ActivityModel
}

// NewWater returns the H2O law. A nil fugacity model defaults to the
// ideal gas.
func NewWater(f solubility.FugacityModel) *Water {
	if f == nil {
		f = solubility.IdealGas{}
	}
	return &Water{fugacity: f, activity: solubility.IdealActivity{}}
}

// Species returns H2O.
func (m *Water) Species() solubility.Species { return solubility.H2O }

// Preprocess normalizes the non-volatile oxides onto an anhydrous
// 100% basis, carrying the volatiles through unchanged.
func (m *Water) Preprocess(c solubility.Composition) solubility.Composition {
	return c.NormalizeAdditionalVolatiles()
}

// DissolvedVolatiles returns the dissolved H2O [wt%] at pressure p
// [bars] and fluid H2O mole fraction xFluid. Temperature does not enter
// the fit.
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
	cat := c.Anhydrous().MolCations()
	alk := cat["Na"] + cat["K"]
	fm := f / 10 // bars to MPa
	a := a3*fm*fm*fm + a2*fm*fm + a1*fm + a0
	b := b2*fm*fm + b1*fm + b0
	return a*alk + b, nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// H2O content of c is exactly fluid-saturated in pure H2O.
func (m *Water) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	cp := m.Preprocess(c)
	return solubility.InvertSaturation(cp.Get("H2O"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, cp, 1)
	})
}

// CheckCalibration reports the experimental range of the fit and of the
// sub-models.
func (m *Water) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	r := []solubility.CalibrationResult{
		solubility.CheckRange("law:shishkina-water", "pressure", p, 500, 5000),
		solubility.CheckRange("law:shishkina-water", "temperature", tempC, 1150, 1250),
	}
	r = append(r, m.fugacity.CheckCalibration(p, tempC)...)
	r = append(r, m.activity.CheckCalibration(1)...)
	return r
}
