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
	"math"

	"github.com/openvolc/solubility/internal/roots"
	"gonum.org/v1/gonum/floats"
)

// XFluidResolution is the minimum resolvable increment of fluid mole
// fraction in iterative refinement.
const XFluidResolution = 0.0001

// A FluidComposition is the mole-fraction split of a two-component
// H2O-CO2 fluid. The invariant XCO2 + XH2O = 1 holds for every value
// built through NewFluidComposition; pure end-members are permitted.
type FluidComposition struct {
	XCO2 float64
	XH2O float64
}

// NewFluidComposition validates the pair of fluid mole fractions.
func NewFluidComposition(xCO2, xH2O float64) (FluidComposition, error) {
	if xCO2 < 0 || xCO2 > 1 || xH2O < 0 || xH2O > 1 {
		return FluidComposition{}, &InputError{Message: "fluid mole fractions must be in [0,1]"}
	}
	if math.Abs(xCO2+xH2O-1) > 1e-9 {
		return FluidComposition{}, &InputError{
			Message: fmt.Sprintf("fluid mole fractions must sum to 1, got %g", xCO2+xH2O)}
	}
	return FluidComposition{XCO2: xCO2, XH2O: xH2O}, nil
}

// FluidCompositionFromSlice builds a FluidComposition from a
// CO2-first pair of mole fractions. Anything other than exactly two
// entries is an InputError.
func FluidCompositionFromSlice(x []float64) (FluidComposition, error) {
	if len(x) != 2 {
		return FluidComposition{}, &InputError{
			Message: fmt.Sprintf("a mixed fluid has exactly two components, got %d", len(x))}
	}
	return NewFluidComposition(x[0], x[1])
}

// DissolvedVolatiles is a pair of dissolved concentrations [wt%].
type DissolvedVolatiles struct {
	H2O float64
	CO2 float64
}

// A SaturationState describes the exact fluid-saturation point of a
// melt: the pressure, and the fluid composition and mass fraction
// there. It is produced only by a converged root-find.
type SaturationState struct {
	Pressure          float64 // bars
	Fluid             FluidComposition
	FluidMassFraction float64 // weight fraction of the whole system
}

// A VolatilePoint is one sample of an isobar or isopleth: the
// conditions and the dissolved volatile pair there.
type VolatilePoint struct {
	Pressure float64 // bars
	XFluid   FluidComposition
	H2O      float64 // dissolved wt%
	CO2      float64 // dissolved wt%
}

// An Isobar is a sweep of fluid composition at constant pressure.
type Isobar struct {
	Pressure float64 // bars
	Points   []VolatilePoint
}

// An Isopleth is a sweep of pressure at constant fluid composition.
type Isopleth struct {
	XFluidCO2 float64
	Points    []VolatilePoint
}

// A MixedFluid couples one CO2 and one H2O solubility law into the
// joint two-species vapor-melt equilibrium. The species order is fixed:
// CO2 first, H2O second.
type MixedFluid struct {
	co2 SolubilityLaw
	h2o SolubilityLaw
}

// NewMixedFluid builds a coordinator from a CO2 law and an H2O law, in
// that order. A species mismatch is an InputError.
func NewMixedFluid(co2, h2o SolubilityLaw) (*MixedFluid, error) {
	if co2 == nil || h2o == nil {
		return nil, &InputError{Message: "mixed fluid requires two solubility laws"}
	}
	if co2.Species() != CO2 {
		return nil, &InputError{Message: "first law of a mixed fluid must describe CO2"}
	}
	if h2o.Species() != H2O {
		return nil, &InputError{Message: "second law of a mixed fluid must describe H2O"}
	}
	return &MixedFluid{co2: co2, h2o: h2o}, nil
}

// Laws returns the component laws in species order (CO2, H2O).
func (m *MixedFluid) Laws() (co2, h2o SolubilityLaw) { return m.co2, m.h2o }

// DissolvedVolatiles returns the dissolved concentration of each
// species at pressure p [bars] and temperature tempC [°C], with the
// fluid split given by fl. Each law is evaluated at its own fluid mole
// fraction.
func (m *MixedFluid) DissolvedVolatiles(p, tempC float64, c Composition, fl FluidComposition) (DissolvedVolatiles, error) {
	wtCO2, err := m.co2.DissolvedVolatiles(p, tempC, c, fl.XCO2)
	if err != nil {
		return DissolvedVolatiles{}, err
	}
	wtH2O, err := m.h2o.DissolvedVolatiles(p, tempC, c, fl.XH2O)
	if err != nil {
		return DissolvedVolatiles{}, err
	}
	return DissolvedVolatiles{H2O: wtH2O, CO2: wtCO2}, nil
}

// CheckCalibration reports the calibration state of both component
// laws and their sub-models.
func (m *MixedFluid) CheckCalibration(p, tempC float64) []CalibrationResult {
	r := m.co2.CheckCalibration(p, tempC)
	return append(r, m.h2o.CheckCalibration(p, tempC)...)
}

// totalMolFractions returns the mole fractions of CO2 and H2O in the
// whole system (melt plus any exsolved fluid).
func totalMolFractions(c Composition) (xtCO2, xtH2O float64) {
	mol := c.MolOxides()
	return mol["CO2"], mol["H2O"]
}

// meltMolFractions returns the melt CO2 and H2O mole fractions with
// the dissolved amounts substituted into the composition.
func meltMolFractions(c Composition, dv DissolvedVolatiles) (xmCO2, xmH2O float64) {
	cm := c.Clone()
	cm["CO2"] = dv.CO2
	cm["H2O"] = dv.H2O
	mol := cm.MolOxides()
	return mol["CO2"], mol["H2O"]
}

// fluidCompResidual is the lever-rule mass balance at trial fluid CO2
// fraction xv: the molar fluid fraction inferred from the CO2 balance
// must equal the one inferred from the H2O balance. The end members use
// one-sided limiting forms to avoid the vanishing denominator.
func (m *MixedFluid) fluidCompResidual(p, tempC float64, c Composition, xtCO2, xtH2O, xv float64) (float64, error) {
	dv, err := m.DissolvedVolatiles(p, tempC, c, FluidComposition{XCO2: xv, XH2O: 1 - xv})
	if err != nil {
		return 0, err
	}
	xmCO2, xmH2O := meltMolFractions(c, dv)
	switch {
	case xv == 0:
		return xtCO2 - xmCO2*(xtH2O-1)/(xmH2O-1), nil
	case xv == 1:
		return -(xtH2O - xmH2O*(xtCO2-1)/(xmCO2-1)), nil
	}
	return (xtCO2-xmCO2)/(xv-xmCO2) - (xtH2O-xmH2O)/((1-xv)-xmH2O), nil
}

// EquilibriumFluidComp returns the equilibrium fluid composition at
// pressure p [bars] and temperature tempC [°C]. Above the saturation
// pressure there is no fluid phase and both fractions are zero.
func (m *MixedFluid) EquilibriumFluidComp(p, tempC float64, c Composition) (FluidComposition, error) {
	sat, err := m.SaturationPressure(tempC, c)
	if err != nil {
		return FluidComposition{}, err
	}
	if p > sat.Pressure {
		return FluidComposition{}, nil // undersaturated
	}
	return m.fluidComp(p, tempC, c)
}

// fluidComp solves the lever-rule balance for the fluid split without
// the saturation guard.
func (m *MixedFluid) fluidComp(p, tempC float64, c Composition) (FluidComposition, error) {
	xtCO2, xtH2O := totalMolFractions(c)
	switch {
	case xtCO2 == 0 && xtH2O == 0:
		return FluidComposition{}, &SaturationError{Message: "sample holds no volatiles; no fluid phase exists"}
	case xtCO2 == 0:
		return FluidComposition{XCO2: 0, XH2O: 1}, nil
	case xtH2O == 0:
		return FluidComposition{XCO2: 1, XH2O: 0}, nil
	}
	resid := func(xv float64) (float64, error) {
		return m.fluidCompResidual(p, tempC, c, xtCO2, xtH2O, xv)
	}
	xv, err := roots.Brent(resid, 0, 1, XFluidResolution*1e-2, 200)
	if err != nil {
		return FluidComposition{}, &ConvergenceError{Op: "equilibrium fluid composition", Err: err}
	}
	return FluidComposition{XCO2: xv, XH2O: 1 - xv}, nil
}

// SaturationPressure solves the joint two-species saturation point: the
// pressure and fluid split at which both laws reproduce the sample's
// total volatile content simultaneously. The solve is seeded from the
// sum of the single-species saturation pressures and an even fluid
// split.
func (m *MixedFluid) SaturationPressure(tempC float64, c Composition) (SaturationState, error) {
	tgtCO2 := m.co2.Preprocess(c).Get("CO2")
	tgtH2O := m.h2o.Preprocess(c).Get("H2O")
	switch {
	case tgtCO2 <= 0 && tgtH2O <= 0:
		return SaturationState{}, &SaturationError{
			Message: "sample holds no dissolved volatiles; it cannot reach fluid saturation"}
	case tgtCO2 <= 0:
		p, err := m.h2o.SaturationPressure(tempC, c)
		if err != nil {
			return SaturationState{}, err
		}
		return SaturationState{Pressure: p, Fluid: FluidComposition{XCO2: 0, XH2O: 1}}, nil
	case tgtH2O <= 0:
		p, err := m.co2.SaturationPressure(tempC, c)
		if err != nil {
			return SaturationState{}, err
		}
		return SaturationState{Pressure: p, Fluid: FluidComposition{XCO2: 1, XH2O: 0}}, nil
	}

	pCO2, err := m.co2.SaturationPressure(tempC, c)
	if err != nil {
		return SaturationState{}, err
	}
	pH2O, err := m.h2o.SaturationPressure(tempC, c)
	if err != nil {
		return SaturationState{}, err
	}

	resid := func(p, xv float64) (f0, f1 float64, err error) {
		dv, err := m.DissolvedVolatiles(p, tempC, c, FluidComposition{XCO2: xv, XH2O: 1 - xv})
		if err != nil {
			return 0, 0, err
		}
		return dv.CO2 - tgtCO2, dv.H2O - tgtH2O, nil
	}
	const eps = 1e-8
	p, xv, err := roots.Newton2D(resid, pCO2+pH2O, 0.5,
		1e-3, 1e7, eps, 1-eps, 1e-9, 200)
	if err != nil {
		return SaturationState{}, &ConvergenceError{Op: "mixed-fluid saturation pressure", Err: err}
	}
	return SaturationState{
		Pressure: p,
		Fluid:    FluidComposition{XCO2: xv, XH2O: 1 - xv},
	}, nil
}

// IsobarsIsopleths sweeps dissolved volatile pairs along lines of
// constant pressure (isobars: fluid composition varies over n evenly
// spaced samples in [0,1]) and of constant fluid composition
// (isopleths: pressure varies over n evenly spaced samples between the
// smallest and largest requested pressure).
func (m *MixedFluid) IsobarsIsopleths(tempC float64, c Composition, pressures, fractions []float64, n int) ([]Isobar, []Isopleth, error) {
	if len(pressures) == 0 {
		return nil, nil, &InputError{Message: "at least one isobar pressure is required"}
	}
	if n < 2 {
		return nil, nil, &InputError{Message: "grids need at least two samples"}
	}
	for _, p := range pressures {
		if p <= 0 {
			return nil, nil, &InputError{Message: fmt.Sprintf("isobar pressure must be positive, got %g", p)}
		}
	}

	xGrid := floats.Span(make([]float64, n), 0, 1)
	isobars := make([]Isobar, 0, len(pressures))
	for _, p := range pressures {
		ib := Isobar{Pressure: p, Points: make([]VolatilePoint, 0, n)}
		for _, x := range xGrid {
			fl := FluidComposition{XCO2: x, XH2O: 1 - x}
			dv, err := m.DissolvedVolatiles(p, tempC, c, fl)
			if err != nil {
				return nil, nil, err
			}
			ib.Points = append(ib.Points, VolatilePoint{Pressure: p, XFluid: fl, H2O: dv.H2O, CO2: dv.CO2})
		}
		isobars = append(isobars, ib)
	}

	pMin, pMax := floats.Min(pressures), floats.Max(pressures)
	pGrid := floats.Span(make([]float64, n), pMin, pMax)
	isopleths := make([]Isopleth, 0, len(fractions))
	for _, x := range fractions {
		if x < 0 || x > 1 {
			return nil, nil, &InputError{Message: fmt.Sprintf("isopleth fluid fraction must be in [0,1], got %g", x)}
		}
		ip := Isopleth{XFluidCO2: x, Points: make([]VolatilePoint, 0, n)}
		fl := FluidComposition{XCO2: x, XH2O: 1 - x}
		for _, p := range pGrid {
			dv, err := m.DissolvedVolatiles(p, tempC, c, fl)
			if err != nil {
				return nil, nil, err
			}
			ip.Points = append(ip.Points, VolatilePoint{Pressure: p, XFluid: fl, H2O: dv.H2O, CO2: dv.CO2})
		}
		isopleths = append(isopleths, ip)
	}
	return isobars, isopleths, nil
}
