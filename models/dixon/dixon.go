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

// Package dixon implements the H2O and CO2 solubility laws of Dixon
// (1997) for alkalic basalts. Both laws scale an SiO2-dependent
// standard-state mole fraction by fugacity and a van't Hoff pressure
// correction; the water law additionally solves the molecular-water /
// hydroxyl speciation equilibrium as an inner root-find bounded in
// (0,1). Temperature is in kelvin internally.
package dixon

import (
	"math"

	"github.com/openvolc/solubility"
	"github.com/openvolc/solubility/internal/roots"
)

// Thermodynamic constants of Dixon (1997).
const (
	deltaVCO2 = 23.0 // partial molar volume of carbonate [cm³/mol]
	deltaVH2O = 12.0 // partial molar volume of molecular water [cm³/mol]

	// Mole-fraction to wt% conversion on a single-oxygen melt basis.
	singleOMass = 36.594 // mean single-oxygen molar mass of the melt [g/mol]
	mH2O        = 18.015
	mCO3        = 44.01 // reported as CO2

	// Regular-solution speciation constants (water).
	specA = 0.403
	specB = 15.333
	specC = 10.894
)

// sio2Breakpoint is the silica content above which the standard-state
// carbonate mole fraction stops decreasing.
const sio2Breakpoint = 48.9

// Carbon is the Dixon (1997) CO2 solubility law.
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

// Preprocess normalizes the non-volatile oxides onto an anhydrous 100%
// basis so SiO2 enters the fit on the volatile-free scale Dixon used.
func (m *Carbon) Preprocess(c solubility.Composition) solubility.Composition {
	return c.NormalizeAdditionalVolatiles()
}

// xCO3Std is the standard-state (1 bar, 1200 °C) carbonate mole
// fraction as a function of melt SiO2 [wt%].
func xCO3Std(sio2 float64) float64 {
	if sio2 >= sio2Breakpoint {
		return 3.817e-7
	}
	return 8.697e-6 - 1.697e-7*sio2
}

// DissolvedVolatiles returns the dissolved CO2 [wt%] at pressure p
// [bars], temperature tempC [°C] and fluid CO2 mole fraction xFluid.
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
	T := tempC + 273.15
	xCO3 := xCO3Std(c.Get("SiO2")) * f * math.Exp(-deltaVCO2*(p-1)/(solubility.RGas*T))
	return 100 * mCO3 * xCO3 / (singleOMass + (mCO3-singleOMass)*xCO3), nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// CO2 content of c is exactly fluid-saturated in pure CO2.
func (m *Carbon) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	cp := m.Preprocess(c)
	return solubility.InvertSaturation(cp.Get("CO2"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, cp, 1)
	})
}

// CheckCalibration reports the calibrated range of the law and of the
// sub-models.
func (m *Carbon) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	r := []solubility.CalibrationResult{
		solubility.CheckRange("law:dixon-carbon", "pressure", p, 1, 1000),
		solubility.CheckRange("law:dixon-carbon", "temperature", tempC, 1000, 1300),
	}
	r = append(r, m.fugacity.CheckCalibration(p, tempC)...)
	r = append(r, m.activity.CheckCalibration(1)...)
	return r
}

// Water is the Dixon (1997) H2O solubility law.
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

// Preprocess normalizes the non-volatile oxides onto an anhydrous 100%
// basis.
func (m *Water) Preprocess(c solubility.Composition) solubility.Composition {
	return c.NormalizeAdditionalVolatiles()
}

// xH2OStd is the standard-state molecular water mole fraction as a
// function of melt SiO2 [wt%].
func xH2OStd(sio2 float64) float64 {
	x := -3.04e-5 + 1.29e-6*sio2
	if x < 0 {
		return 0
	}
	return x
}

// DissolvedVolatiles returns the total dissolved H2O [wt%] (molecular
// plus hydroxyl) at pressure p [bars], temperature tempC [°C] and fluid
// H2O mole fraction xFluid.
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
	xMol := xH2OStd(c.Get("SiO2")) * f * math.Exp(-deltaVH2O*(p-1)/(solubility.RGas*T))
	if xMol <= 0 {
		return 0, nil
	}
	if xMol >= 1 {
		return 0, &solubility.ConvergenceError{Op: "Dixon speciation", Err: &roots.NoConvergenceError{
			Method: "brent", Last: xMol}}
	}
	xOH, err := speciate(xMol)
	if err != nil {
		return 0, err
	}
	xB := xMol + 0.5*xOH
	return 100 * mH2O * xB / (singleOMass + (mH2O-singleOMass)*xB), nil
}

// speciate solves the regular-solution equilibrium between molecular
// water and hydroxyl, H2Om + O = 2OH: ln(XOH²/(XH2Om·XO)) =
// -(A + B·XOH + C·XH2Om). The root is bracketed in (0, 1-xMol).
func speciate(xMol float64) (float64, error) {
	resid := func(xOH float64) (float64, error) {
		xO := 1 - xMol - xOH
		if xO <= 0 {
			return math.Inf(1), nil
		}
		return math.Log(xOH*xOH/(xMol*xO)) + specA + specB*xOH + specC*xMol, nil
	}
	const eps = 1e-12
	xOH, err := roots.Brent(resid, eps, 1-xMol-eps, 1e-10, 200)
	if err != nil {
		return 0, &solubility.ConvergenceError{Op: "Dixon speciation", Err: err}
	}
	return xOH, nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// H2O content of c is exactly fluid-saturated in pure H2O.
func (m *Water) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	cp := m.Preprocess(c)
	return solubility.InvertSaturation(cp.Get("H2O"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, cp, 1)
	})
}

// CheckCalibration reports the calibrated range of the law and of the
// sub-models.
func (m *Water) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	r := []solubility.CalibrationResult{
		solubility.CheckRange("law:dixon-water", "pressure", p, 1, 1000),
		solubility.CheckRange("law:dixon-water", "temperature", tempC, 1000, 1300),
	}
	r = append(r, m.fugacity.CheckCalibration(p, tempC)...)
	r = append(r, m.activity.CheckCalibration(1)...)
	return r
}
