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

// Package liu implements the H2O and CO2 solubility laws of Liu et al.
// (2005) for rhyolitic melts. The fits are polynomial in the H2O and
// CO2 partial pressures [MPa] and temperature [K] and carry no
// compositional dependence.
package liu

import (
	"math"

	"github.com/openvolc/solubility"
)

// Water is the Liu et al. (2005) H2O solubility law.
type Water struct{}

// NewWater returns the H2O law.
func NewWater() *Water { return &Water{} }

// Species returns H2O.
func (m *Water) Species() solubility.Species { return solubility.H2O }

// Preprocess is the identity: the fit has no compositional terms.
func (m *Water) Preprocess(c solubility.Composition) solubility.Composition {
	return c.Clone()
}

// DissolvedVolatiles returns the dissolved H2O [wt%] at pressure p
// [bars], temperature tempC [°C], and fluid H2O mole fraction xFluid.
func (m *Water) DissolvedVolatiles(p, tempC float64, c solubility.Composition, xFluid float64) (float64, error) {
	return m.dissolved(p, tempC, c, xFluid)
}

func (m *Water) dissolved(p, tempC float64, c solubility.Composition, xFluid float64) (float64, error) {
	if xFluid < 0 || xFluid > 1 {
		return 0, &solubility.InputError{Message: "fluid mole fraction must be in [0,1]"}
	}
	if xFluid == 0 {
		return 0, nil
	}
	T := tempC + 273.15
	pw := xFluid * p / 10       // H2O partial pressure [MPa]
	pc := (1 - xFluid) * p / 10 // CO2 partial pressure [MPa]
	if pw <= 0 {
		return 0, nil
	}
	sqw := math.Sqrt(pw)
	w := (354.94*sqw+9.623*pw-1.5223*pw*sqw)/T +
		0.0012439*pw*sqw +
		pc*(-1.084e-4*sqw-1.362e-5*pw)
	if w < 0 {
		return 0, nil
	}
	return w, nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// H2O content of c is exactly fluid-saturated in pure H2O.
func (m *Water) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	return solubility.InvertSaturation(c.Get("H2O"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, c, 1)
	})
}

// CheckCalibration reports the experimental range of the fit.
func (m *Water) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	return []solubility.CalibrationResult{
		solubility.CheckRange("law:liu-water", "pressure", p, 1, 5000),
		solubility.CheckRange("law:liu-water", "temperature", tempC, 700, 1200),
	}
}

// Carbon is the Liu et al. (2005) CO2 solubility law.
type Carbon struct{}

// NewCarbon returns the CO2 law.
func NewCarbon() *Carbon { return &Carbon{} }

// Species returns CO2.
func (m *Carbon) Species() solubility.Species { return solubility.CO2 }

// Preprocess is the identity: the fit has no compositional terms.
func (m *Carbon) Preprocess(c solubility.Composition) solubility.Composition {
	return c.Clone()
}

// DissolvedVolatiles returns the dissolved CO2 [wt%] at pressure p
// [bars], temperature tempC [°C], and fluid CO2 mole fraction xFluid.
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
	T := tempC + 273.15
	pc := xFluid * p / 10       // CO2 partial pressure [MPa]
	pw := (1 - xFluid) * p / 10 // H2O partial pressure [MPa]
	if pc <= 0 {
		return 0, nil
	}
	sqw := math.Sqrt(pw)
	ppm := pc*(5668-55.99*pw)/T + pc*(0.4133*sqw+2.041e-3*pw*sqw)
	if ppm < 0 {
		return 0, nil
	}
	return ppm / 1e4, nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// CO2 content of c is exactly fluid-saturated in pure CO2.
func (m *Carbon) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	return solubility.InvertSaturation(c.Get("CO2"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, c, 1)
	})
}

// CheckCalibration reports the experimental range of the fit.
func (m *Carbon) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	return []solubility.CalibrationResult{
		solubility.CheckRange("law:liu-carbon", "pressure", p, 1, 5000),
		solubility.CheckRange("law:liu-carbon", "temperature", tempC, 700, 1200),
	}
}
