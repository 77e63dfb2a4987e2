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

	"github.com/openvolc/solubility/internal/roots"
)

// A Species is one of the two volatile species handled by this package.
type Species int

const (
	H2O Species = iota
	CO2
)

// String returns the oxide name of the species.
func (s Species) String() string {
	switch s {
	case H2O:
		return "H2O"
	case CO2:
		return "CO2"
	}
	return fmt.Sprintf("Species(%d)", int(s))
}

// MolarMass returns the molar mass of the species [g/mol].
func (s Species) MolarMass() float64 { return OxideMass[s.String()] }

// A FugacityModel computes the fugacity of a species in a two-component
// H2O-CO2 fluid.
type FugacityModel interface {
	// Fugacity returns the fugacity [bars] of the species at total
	// pressure p [bars], temperature tempC [°C], and mole fraction
	// xFluid of the species in the fluid.
	Fugacity(p, tempC, xFluid float64) (float64, error)

	// CheckCalibration reports whether the given conditions are within
	// the model's calibrated range.
	CheckCalibration(p, tempC float64) []CalibrationResult
}

// An ActivityModel computes the activity of a melt component from its
// mole fraction.
type ActivityModel interface {
	Activity(x float64) float64
	CheckCalibration(x float64) []CalibrationResult
}

// A SolubilityLaw is one published solubility relationship for a single
// volatile species. Implementations document the temperature scale and
// pressure unit their published fit uses; the interface itself is always
// called with bars and °C.
type SolubilityLaw interface {
	// Species returns the volatile species the law describes.
	Species() Species

	// Preprocess applies the law's compositional normalization. Every
	// public operation routes its input through Preprocess exactly once.
	Preprocess(c Composition) Composition

	// DissolvedVolatiles returns the dissolved concentration [wt%] of the
	// species at pressure p [bars], temperature tempC [°C], and fluid
	// mole fraction xFluid of the species.
	DissolvedVolatiles(p, tempC float64, c Composition, xFluid float64) (float64, error)

	// SaturationPressure returns the pressure [bars] at which the melt
	// with the given dissolved volatile content is exactly
	// fluid-saturated in the pure-species fluid.
	SaturationPressure(tempC float64, c Composition) (float64, error)

	// CheckCalibration reports, per sub-model component, whether the
	// given conditions are within the published calibration windows.
	CheckCalibration(p, tempC float64) []CalibrationResult
}

// A CalibrationResult reports whether one parameter used in a
// calculation was within the published calibration window of one
// component (the solubility law itself, its fugacity sub-model, or its
// activity sub-model). Calibration violations are advisory, never
// errors: published models are often applied slightly outside their
// fitted ranges intentionally.
type CalibrationResult struct {
	Component string  // e.g. "law:dixon-carbon", "fugacity:mrk-co2"
	Parameter string  // "pressure" or "temperature"
	Value     float64 // the value actually used
	InRange   bool
}

// CheckRange builds a CalibrationResult for value against [min, max].
func CheckRange(component, parameter string, value, min, max float64) CalibrationResult {
	return CalibrationResult{
		Component: component,
		Parameter: parameter,
		Value:     value,
		InRange:   value >= min && value <= max,
	}
}

// Saturation reports whether a melt at a queried pressure holds a free
// fluid phase.
type Saturation int

const (
	Undersaturated Saturation = iota
	Saturated
)

func (s Saturation) String() string {
	if s == Saturated {
		return "saturated"
	}
	return "undersaturated"
}

// FluidPresence reports whether the melt is fluid-saturated at pressure
// p [bars] by comparing p against the law's saturation pressure.
func FluidPresence(law SolubilityLaw, p, tempC float64, c Composition) (Saturation, error) {
	satP, err := law.SaturationPressure(tempC, c)
	if err != nil {
		return Undersaturated, err
	}
	if p < satP {
		return Saturated, nil
	}
	return Undersaturated, nil
}

// Root-find seeds and tolerances for saturation-pressure inversion.
const (
	satSeedLow  = 1000.0 // bars
	satSeedHigh = 2000.0 // bars
	satTol      = 1e-8
	satMaxIter  = 200

	satFloor = 1e-6 // bars; low end of the bracketed fallback
	satCeil  = 1e7  // bars; the bracket expansion gives up here
)

// InvertSaturation solves dissolved(p) = target [wt%] for p [bars].
// Pressures at which the forward evaluation is degenerate (p ≤ 0,
// vanishing fugacity) count as zero dissolved volatiles rather than
// errors. A two-seed secant iteration handles the common case; when the
// seeds overshoot a low-pressure root the iterates can land on the flat
// degenerate branch and stall, so on secant failure the solve falls back
// to Brent on a verified sign-change bracket, expanding the upper end
// from satSeedHigh. A target the law never reaches at any pressure up to
// satCeil yields a SaturationError, as does a non-positive target.
func InvertSaturation(target float64, dissolved func(p float64) (float64, error)) (float64, error) {
	if target <= 0 {
		return 0, &SaturationError{Message: "sample holds no dissolved volatiles; it cannot reach fluid saturation"}
	}
	resid := func(p float64) (float64, error) {
		if p <= 0 {
			return -target, nil
		}
		w, err := dissolved(p)
		if err != nil {
			return 0, err
		}
		return w - target, nil
	}
	p, err := roots.Secant(resid, satSeedLow, satSeedHigh, satTol, satMaxIter)
	if err == nil {
		if p <= 0 {
			return 0, &SaturationError{Message: "pressure search reached the floor without fluid saturation"}
		}
		return p, nil
	}
	// The residual is -target at the low-pressure limit. Any pressure
	// where it is non-negative therefore closes a bracket around the
	// lowest root.
	for hi := satSeedHigh; hi <= satCeil; hi *= 2 {
		fhi, err := resid(hi)
		if err != nil {
			return 0, err
		}
		if fhi >= 0 {
			p, err := roots.Brent(resid, satFloor, hi, satTol, satMaxIter)
			if err != nil {
				return 0, &ConvergenceError{Op: "saturation pressure inversion", Err: err}
			}
			return p, nil
		}
	}
	return 0, &SaturationError{Message: fmt.Sprintf(
		"dissolved content never reaches %g wt%% at any pressure up to %g bars", target, satCeil)}
}
