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

// Package iaconomarziano implements the H2O and CO2 solubility laws of
// Iacono-Marziano et al. (2012) for mafic melts. Both laws are
// parameterized on NBO/O, the ratio of non-bridging oxygens to total
// oxygens. With the hydrous coefficient sets (the default) dissolved
// water itself contributes to NBO/O, which makes the water law implicit:
// it is solved by an inner root-find over the dissolved concentration.
// Pressure enters the fits in MPa and temperature in kelvin.
package iaconomarziano

import (
	"math"

	"github.com/openvolc/solubility"
	"github.com/openvolc/solubility/internal/roots"
)

// WaterCoefficients parameterize
// ln(H2O wt%) = a·ln(xH2O·P) + b·NBO/O + B + C·P/T.
type WaterCoefficients struct {
	A, BNBO, Intercept, CPT float64
	Hydrous                 bool
}

// CarbonCoefficients parameterize
//
//	ln(CO2 ppm) = a·ln(xCO2·P) + b·NBO/O + B + C·P/T
//	            + dH2O·xH2Om + dAI·AI + dFeMg·x(FeO+MgO) + dNK·x(Na2O+K2O)
//
// where AI = xAl2O3/(xCaO+xK2O+xNa2O) and the x are melt oxide mole
// fractions.
type CarbonCoefficients struct {
	A, BNBO, Intercept, CPT float64
	DH2O, DAI, DFeMg, DNaK  float64
	Hydrous                 bool
}

// Published coefficient sets of Iacono-Marziano et al. (2012).
var (
	HydrousWater   = WaterCoefficients{A: 0.53, BNBO: 2.35, Intercept: -3.37, CPT: -0.02, Hydrous: true}
	AnhydrousWater = WaterCoefficients{A: 0.54, BNBO: 1.24, Intercept: -2.95, CPT: 0.02}

	HydrousCarbon = CarbonCoefficients{
		A: 1.0, BNBO: 17.3, Intercept: -6.0, CPT: 0.12,
		DH2O: -16.4, DAI: 4.4, DFeMg: -17.1, DNaK: 22.8, Hydrous: true,
	}
	AnhydrousCarbon = CarbonCoefficients{
		A: 1.0, BNBO: 15.8, Intercept: -5.3, CPT: 0.14,
		DH2O: 0, DAI: 3.8, DFeMg: -16.3, DNaK: 20.1,
	}
)

// nboO returns NBO/O of the composition from its oxide mole fractions.
// When hydrous is true, dissolved water counts as a network modifier.
func nboO(c solubility.Composition, hydrous bool) float64 {
	if !hydrous {
		c = c.Anhydrous()
	}
	mol := c.MolOxides()
	nbo := 2 * (mol["K2O"] + mol["Na2O"] + mol["CaO"] + mol["MgO"] + mol["FeO"] - mol["Al2O3"])
	o := 2*mol["SiO2"] + 2*mol["TiO2"] + 3*mol["Al2O3"] +
		mol["MgO"] + mol["FeO"] + mol["CaO"] + mol["Na2O"] + mol["K2O"]
	if hydrous {
		nbo += 2 * mol["H2O"]
		o += mol["H2O"]
	}
	if o <= 0 {
		return 0
	}
	if nbo < 0 {
		nbo = 0
	}
	return nbo / o
}

// Water is the Iacono-Marziano et al. (2012) H2O solubility law.
type Water struct {
	coef WaterCoefficients
}

// NewWater returns the H2O law with the given coefficient set; the zero
// value of WaterCoefficients selects the hydrous set.
func NewWater(coef WaterCoefficients) *Water {
	if coef == (WaterCoefficients{}) {
		coef = HydrousWater
	}
	return &Water{coef: coef}
}

// Species returns H2O.
func (m *Water) Species() solubility.Species { return solubility.H2O }

// Preprocess applies the standard normalization with the volatile
// contents held fixed.
func (m *Water) Preprocess(c solubility.Composition) solubility.Composition {
	return c.NormalizeFixedVolatiles()
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
	pMPa := p / 10
	T := tempC + 273.15
	if xFluid*pMPa <= 0 {
		return 0, nil
	}
	closed := func(nbo float64) float64 {
		return math.Exp(m.coef.A*math.Log(xFluid*pMPa) + m.coef.BNBO*nbo +
			m.coef.Intercept + m.coef.CPT*pMPa/T)
	}
	if !m.coef.Hydrous {
		return closed(nboO(c, false)), nil
	}
	// Hydrous NBO/O depends on the answer; iterate on dissolved H2O.
	resid := func(w float64) (float64, error) {
		if w < 0 {
			w = 0
		}
		ch := c.Clone()
		ch["H2O"] = w
		return w - closed(nboO(ch.NormalizeFixedVolatiles(), true)), nil
	}
	w, err := roots.Secant(resid, 1.0, 2.0, 1e-9, 100)
	if err != nil {
		return 0, &solubility.ConvergenceError{Op: "Iacono-Marziano dissolved H2O", Err: err}
	}
	if w < 0 {
		w = 0
	}
	return w, nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// H2O content of c is exactly fluid-saturated in pure H2O.
func (m *Water) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	cp := m.Preprocess(c)
	return solubility.InvertSaturation(cp.Get("H2O"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, cp, 1)
	})
}

// CheckCalibration reports the experimental range of the fit. The law
// has no separate fugacity or activity sub-model; partial pressure
// enters the fit directly.
func (m *Water) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	return []solubility.CalibrationResult{
		solubility.CheckRange("law:iaconomarziano-water", "pressure", p, 100, 10000),
		solubility.CheckRange("law:iaconomarziano-water", "temperature", tempC, 1100, 1400),
	}
}

// Carbon is the Iacono-Marziano et al. (2012) CO2 solubility law. The
// hydrous compositional terms read the dissolved water content from the
// sample composition.
type Carbon struct {
	coef CarbonCoefficients
}

// NewCarbon returns the CO2 law with the given coefficient set; the
// zero value of CarbonCoefficients selects the hydrous set.
func NewCarbon(coef CarbonCoefficients) *Carbon {
	if coef == (CarbonCoefficients{}) {
		coef = HydrousCarbon
	}
	return &Carbon{coef: coef}
}

// Species returns CO2.
func (m *Carbon) Species() solubility.Species { return solubility.CO2 }

// Preprocess applies the standard normalization with the volatile
// contents held fixed.
func (m *Carbon) Preprocess(c solubility.Composition) solubility.Composition {
	return c.NormalizeFixedVolatiles()
}

// DissolvedVolatiles returns the dissolved CO2 [wt%] at pressure p
// [bars], temperature tempC [°C], and fluid CO2 mole fraction xFluid.
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
	pMPa := p / 10
	T := tempC + 273.15
	if xFluid*pMPa <= 0 {
		return 0, nil
	}
	mol := c.MolOxides()
	nkc := mol["CaO"] + mol["K2O"] + mol["Na2O"]
	var ai float64
	if nkc > 0 {
		ai = mol["Al2O3"] / nkc
	}
	ln := m.coef.A*math.Log(xFluid*pMPa) + m.coef.BNBO*nboO(c, m.coef.Hydrous) +
		m.coef.Intercept + m.coef.CPT*pMPa/T +
		m.coef.DH2O*mol["H2O"] + m.coef.DAI*ai +
		m.coef.DFeMg*(mol["FeO"]+mol["MgO"]) + m.coef.DNaK*(mol["Na2O"]+mol["K2O"])
	return math.Exp(ln) / 1e4, nil
}

// SaturationPressure returns the pressure [bars] at which the dissolved
// CO2 content of c is exactly fluid-saturated in pure CO2.
func (m *Carbon) SaturationPressure(tempC float64, c solubility.Composition) (float64, error) {
	cp := m.Preprocess(c)
	return solubility.InvertSaturation(cp.Get("CO2"), func(p float64) (float64, error) {
		return m.dissolved(p, tempC, cp, 1)
	})
}

// CheckCalibration reports the experimental range of the fit.
func (m *Carbon) CheckCalibration(p, tempC float64) []solubility.CalibrationResult {
	return []solubility.CalibrationResult{
		solubility.CheckRange("law:iaconomarziano-carbon", "pressure", p, 100, 10000),
		solubility.CheckRange("law:iaconomarziano-carbon", "temperature", tempC, 1100, 1400),
	}
}
