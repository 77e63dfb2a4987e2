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
	"math"

	"github.com/openvolc/solubility/internal/roots"
)

// RGas is the gas constant in bar·cm³/(mol·K).
const RGas = 83.14

// IdealGas is the ideal-gas fugacity model: fugacity equals the partial
// pressure of the species.
type IdealGas struct{}

// Fugacity returns p·xFluid [bars].
func (IdealGas) Fugacity(p, tempC, xFluid float64) (float64, error) {
	if xFluid < 0 || xFluid > 1 {
		return 0, &InputError{Message: "fluid mole fraction must be in [0,1]"}
	}
	return p * xFluid, nil
}

// CheckCalibration always reports in-range.
func (IdealGas) CheckCalibration(p, tempC float64) []CalibrationResult {
	return []CalibrationResult{
		{Component: "fugacity:ideal", Parameter: "pressure", Value: p, InRange: true},
		{Component: "fugacity:ideal", Parameter: "temperature", Value: tempC, InRange: true},
	}
}

// mrkParams holds the pure-species parameters of the Kerrick and Jacobs
// (1981) modified Redlich-Kwong equation of state: hard-sphere
// covolume b [cm³/mol] and the virial attraction
// a(T,V) = c + d/V + e/V² with c [bar·cm⁶·K½/mol²],
// d [bar·cm⁹·K½/mol³] and e [bar·cm¹²·K½/mol⁴]; T in kelvin.
type mrkParams struct {
	b       float64
	c, d, e func(T float64) float64
}

var mrkBySpecies = map[Species]mrkParams{
	H2O: {
		b: 29.0,
		c: func(T float64) float64 { return (290.78 - 0.30276*T + 1.4774e-4*T*T) * 1e6 },
		d: func(T float64) float64 { return (-8374.0 + 19.437*T - 8.148e-3*T*T) * 1e6 },
		e: func(T float64) float64 { return (76600.0 - 133.9*T + 0.1071*T*T) * 1e6 },
	},
	CO2: {
		b: 58.0,
		c: func(T float64) float64 { return (28.31 + 0.10721*T - 8.81e-6*T*T) * 1e6 },
		d: func(T float64) float64 { return (9380.0 - 8.53*T + 1.189e-3*T*T) * 1e3 },
		e: func(T float64) float64 { return (-1.30 + 5.27e-3*T - 1.095e-6*T*T) * 1e8 },
	},
}

// mrkVolumeSeeds maps physical regimes of the EOS to the two seed
// volumes [cm³/mol] for the secant volume solve. The dense branch covers
// compressed low-temperature fluid where the gas-like seed would start
// on the wrong side of the hard-sphere singularity.
var mrkVolumeSeeds = []struct {
	minP float64 // bars
	maxT float64 // kelvin
	v0   float64
	v1   float64
}{
	{minP: 20000, maxT: 800, v0: 15, v1: 35},
}

// MRK is the mixed-fluid modified Redlich-Kwong fugacity model of
// Kerrick and Jacobs (1981) for a two-component H2O-CO2 fluid. The
// published calibration extends to 1050 °C; above that the model reduces
// to the pure-species fugacity scaled by the fluid mole fraction.
type MRK struct {
	species Species
}

// NewMRK returns the MRK fugacity model for the given species.
func NewMRK(species Species) *MRK { return &MRK{species: species} }

// mrkHighTReduction is the temperature [°C] above which the mixture
// treatment reduces to scaled pure-species fugacity.
const mrkHighTReduction = 1050.0

// Fugacity returns the fugacity [bars] of the model's species in an
// H2O-CO2 fluid at total pressure p [bars] and temperature tempC [°C],
// where xFluid is the mole fraction of the species itself. A vanishing
// xFluid short-circuits to zero without invoking the volume solver.
func (m *MRK) Fugacity(p, tempC, xFluid float64) (float64, error) {
	if xFluid < 0 || xFluid > 1 {
		return 0, &InputError{Message: "fluid mole fraction must be in [0,1]"}
	}
	if xFluid == 0 {
		return 0, nil
	}
	T := tempC + 273.15
	x := xFluid
	if tempC > mrkHighTReduction {
		// Outside the mixture calibration: pure-species fugacity
		// scaled by the mole fraction.
		x = 1
	}
	lnPhi, err := m.lnPhi(p, T, x)
	if err != nil {
		return 0, err
	}
	return p * math.Exp(lnPhi) * xFluid, nil
}

// CheckCalibration reports the Kerrick and Jacobs (1981) calibration
// window.
func (m *MRK) CheckCalibration(p, tempC float64) []CalibrationResult {
	name := "fugacity:mrk-" + m.species.String()
	return []CalibrationResult{
		CheckRange(name, "pressure", p, 1, 50000),
		CheckRange(name, "temperature", tempC, 325, 1050),
	}
}

func (m *MRK) other() Species {
	if m.species == H2O {
		return CO2
	}
	return H2O
}

// mixture evaluates the composition-weighted EOS parameters for mole
// fraction x of the model's species. Cross terms use geometric mixing.
func (m *MRK) mixture(T, x float64) (b, cMix, dMix, eMix, cK, dK, eK float64) {
	self := mrkBySpecies[m.species]
	oth := mrkBySpecies[m.other()]
	y := 1 - x
	b = x*self.b + y*oth.b

	cS, cO := self.c(T), oth.c(T)
	dS, dO := self.d(T), oth.d(T)
	eS, eO := self.e(T), oth.e(T)
	cX := math.Sqrt(math.Abs(cS * cO))
	dX := math.Sqrt(math.Abs(dS * dO))
	eX := math.Sqrt(math.Abs(eS * eO))

	cMix = x*x*cS + 2*x*y*cX + y*y*cO
	dMix = x*x*dS + 2*x*y*dX + y*y*dO
	eMix = x*x*eS + 2*x*y*eX + y*y*eO

	// Σ_j x_j a_kj terms for the fugacity coefficient of the species.
	cK = x*cS + y*cX
	dK = x*dS + y*dX
	eK = x*eS + y*eX
	return
}

// pressure evaluates the EOS at molar volume v [cm³/mol]:
// P = RT(1+y+y²-y³)/(V(1-y)³) - a(T,V)/(√T·V(V+b)), y = b/4V.
func mrkPressure(T, v, b, cMix, dMix, eMix float64) float64 {
	y := b / (4 * v)
	rep := RGas * T * (1 + y + y*y - y*y*y) / (v * math.Pow(1-y, 3))
	a := cMix + dMix/v + eMix/(v*v)
	att := a / (math.Sqrt(T) * v * (v + b))
	return rep - att
}

// volume solves the EOS for molar volume at pressure p [bars] with a
// two-seed secant iteration. Seeds come from the regime table.
func (m *MRK) volume(p, T, x float64) (float64, error) {
	b, cMix, dMix, eMix, _, _, _ := m.mixture(T, x)
	v0 := RGas * T / p
	v1 := v0 + b
	for _, s := range mrkVolumeSeeds {
		if p >= s.minP && T < s.maxT {
			v0, v1 = s.v0, s.v1
			break
		}
	}
	lim := b / 4 * 1.0001 // hard-sphere singularity
	v, err := roots.Secant(func(v float64) (float64, error) {
		if v <= lim {
			v = lim
		}
		return mrkPressure(T, v, b, cMix, dMix, eMix) - p, nil
	}, v0, v1, 1e-8*p, 200)
	if err != nil {
		return 0, &ConvergenceError{Op: "MRK molar volume", Err: err}
	}
	if v <= lim {
		return 0, &ConvergenceError{Op: "MRK molar volume", Err: &roots.NoConvergenceError{
			Method: "secant", Last: v}}
	}
	return v, nil
}

// lnPhi returns the log fugacity coefficient of the model's species at
// mole fraction x, evaluated analytically from the EOS parameters once
// the molar volume is known (Kerrick and Jacobs 1981).
func (m *MRK) lnPhi(p, T, x float64) (float64, error) {
	v, err := m.volume(p, T, x)
	if err != nil {
		return 0, err
	}
	b, cMix, dMix, eMix, cK, dK, eK := m.mixture(T, x)
	bk := mrkBySpecies[m.species].b
	y := b / (4 * v)
	z := p * v / (RGas * T)

	// Hard-sphere repulsive contribution.
	lnPhi := (4*y - 3*y*y) / ((1 - y) * (1 - y))
	lnPhi += (bk / b) * (4*y - 2*y*y) / math.Pow(1-y, 3)

	// Attractive contribution, with the mixture attraction evaluated at
	// the solved volume.
	rt := RGas * math.Pow(T, 1.5)
	aMix := cMix + dMix/v + eMix/(v*v)
	aK := cK + dK/v + eK/(v*v)
	lvb := math.Log((v + b) / v)
	lnPhi -= (2 * aK / (rt * b)) * lvb
	lnPhi += (aMix * bk / (rt * b * b)) * (lvb - b/(v+b))

	lnPhi -= math.Log(z)
	return lnPhi, nil
}
