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

	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
)

// A Phase is one phase of an equilibrium assemblage.
type Phase struct {
	Mass        float64 // grams per 100 g of bulk
	Composition Composition
}

// A PhaseAssemblage maps phase names ("liquid", "fluid") to phases.
type PhaseAssemblage map[string]Phase

// An EquilibriumEngine is an external thermodynamic engine that can
// equilibrate a bulk composition at a temperature and pressure. The
// pressure crosses this boundary as a dimensioned quantity; engines
// unwrap it with InMPa (or InBars) and reject anything that does not
// carry pressure dimensions.
type EquilibriumEngine interface {
	// SetBulkComposition loads c [wt% oxides] into the engine.
	SetBulkComposition(c Composition) error
	// Equilibrate computes the phase assemblage at tempC [°C] and
	// pressure.
	Equilibrate(tempC float64, pressure *unit.Unit) (PhaseAssemblage, error)
}

// MagmaSat models mixed-fluid solubility by delegating equilibrium
// calculations to an external engine. The caller owns the engine
// handle; MagmaSat never shares it across values.
type MagmaSat struct {
	engine EquilibriumEngine
	log    *logrus.Logger
}

// NewMagmaSat wraps engine. A nil engine is rejected on use, not here.
func NewMagmaSat(engine EquilibriumEngine) *MagmaSat {
	return &MagmaSat{engine: engine, log: silentLogger()}
}

// SetLogger routes saturation-search progress to log.
func (m *MagmaSat) SetLogger(log *logrus.Logger) { m.log = log }

// Preprocess returns c with the anhydrous oxides rescaled around the
// volatile contents.
func (m *MagmaSat) Preprocess(c Composition) Composition {
	return c.NormalizeFixedVolatiles()
}

// saturation search bounds and decrements, all in MPa.
const (
	msStartMPa  = 2000.0
	msFloorMPa  = 0.1
	msFluidTiny = 1e-10 // grams of fluid counted as none
)

// equilibrate runs the engine at one point and returns the assemblage.
func (m *MagmaSat) equilibrate(tempC, pressureMPa float64, c Composition) (PhaseAssemblage, error) {
	if m.engine == nil {
		return nil, &InputError{Message: "magmasat: no equilibrium engine attached"}
	}
	if err := m.engine.SetBulkComposition(c); err != nil {
		return nil, fmt.Errorf("magmasat: setting bulk composition: %v", err)
	}
	a, err := m.engine.Equilibrate(tempC, MPa(pressureMPa))
	if err != nil {
		return nil, fmt.Errorf("magmasat: equilibrating at %g MPa: %v", pressureMPa, err)
	}
	return a, nil
}

// fluidMass returns the fluid phase mass at one pressure, zero when no
// fluid phase exists.
func (m *MagmaSat) fluidMass(tempC, pressureMPa float64, c Composition) (float64, error) {
	a, err := m.equilibrate(tempC, pressureMPa, c)
	if err != nil {
		return 0, err
	}
	return a["fluid"].Mass, nil
}

// SaturationPressure finds the highest pressure at which a fluid phase
// coexists with the melt, by stepping down from 2000 MPa in decrements
// of 100, 10 and finally 1 MPa. The result is reported in bars.
func (m *MagmaSat) SaturationPressure(tempC float64, c Composition) (SaturationState, error) {
	comp := m.Preprocess(c)
	p := msStartMPa
	for _, dec := range []float64{100, 10, 1} {
		for p > msFloorMPa {
			fm, err := m.fluidMass(tempC, p, comp)
			if err != nil {
				return SaturationState{}, err
			}
			if fm > msFluidTiny {
				break
			}
			p -= dec
		}
		if p <= msFloorMPa {
			return SaturationState{}, &SaturationError{Message: fmt.Sprintf(
				"magmasat: no fluid phase found above %g MPa", msFloorMPa)}
		}
		m.log.WithFields(logrus.Fields{
			"decrement": dec, "pressureMPa": p,
		}).Debug("magmasat saturation search")
		if dec > 1 {
			// Back off one coarse step and refine from above.
			p += dec
		}
	}

	a, err := m.equilibrate(tempC, p, comp)
	if err != nil {
		return SaturationState{}, err
	}
	fl := fluidCompFromPhase(a["fluid"])
	return SaturationState{
		Pressure:          MPaToBars(p),
		Fluid:             fl,
		FluidMassFraction: a["fluid"].Mass / 100,
	}, nil
}

// rawFluidXCO2 returns the unrounded CO2 mole fraction of a fluid
// phase. ok is false when the phase holds no fluid.
func rawFluidXCO2(f Phase) (x float64, ok bool) {
	if f.Mass <= msFluidTiny {
		return 0, false
	}
	nCO2 := f.Composition["CO2"] / CO2.MolarMass()
	nH2O := f.Composition["H2O"] / H2O.MolarMass()
	if nCO2+nH2O == 0 {
		return 0, false
	}
	return nCO2 / (nCO2 + nH2O), true
}

// fluidCompFromPhase converts a fluid phase's H2O/CO2 weight fractions
// into mole fractions, rounded to the fluid composition resolution.
func fluidCompFromPhase(f Phase) FluidComposition {
	x, ok := rawFluidXCO2(f)
	if !ok {
		return FluidComposition{}
	}
	x = math.Round(x/XFluidResolution) * XFluidResolution
	return FluidComposition{XCO2: x, XH2O: 1 - x}
}

// equilibriumFluidComp reads the fluid split at pressureMPa, zero when
// no fluid phase exists there.
func (m *MagmaSat) equilibriumFluidComp(tempC, pressureMPa float64, c Composition) (FluidComposition, error) {
	a, err := m.equilibrate(tempC, pressureMPa, c)
	if err != nil {
		return FluidComposition{}, err
	}
	return fluidCompFromPhase(a["fluid"]), nil
}

// EquilibriumFluidComp returns the composition of the fluid in
// equilibrium with melt c at pressure [bars] and tempC [°C]. A melt
// that is undersaturated at this pressure has no fluid, reported as
// the zero composition.
func (m *MagmaSat) EquilibriumFluidComp(pressure, tempC float64, c Composition) (FluidComposition, error) {
	return m.equilibriumFluidComp(tempC, BarsToMPa(pressure), m.Preprocess(c))
}

// dissolved-volatiles search parameters. The bulk volatile load rises
// in msLoadStep increments until the engine reports a fluid phase, then
// the H2O share of the load walks through progressively finer steps.
const (
	msLoadStep = 2.0  // wt% volatiles added per loading step
	msLoadMax  = 40.0 // wt% ceiling for the added load
)

var msShareSteps = []float64{0.1, 0.01, 0.001, 1e-4, 1e-5}

// liquidVolatiles reads the H2O and CO2 retained in the liquid phase of
// an assemblage.
func liquidVolatiles(a PhaseAssemblage) (DissolvedVolatiles, error) {
	liq, ok := a["liquid"]
	if !ok {
		return DissolvedVolatiles{}, &SaturationError{Message: "magmasat: no liquid phase in assemblage"}
	}
	return DissolvedVolatiles{
		H2O: liq.Composition["H2O"],
		CO2: liq.Composition["CO2"],
	}, nil
}

// DissolvedVolatiles returns the melt H2O and CO2 contents in
// equilibrium with a fluid of composition fl at pressure [bars] and
// tempC [°C]. The bulk volatile load is first raised in the fluid's own
// proportions until the engine reports a fluid phase; the bulk H2O/CO2
// split is then refined coarse-to-fine until the equilibrium fluid
// matches fl within XFluidResolution, and the liquid contents at that
// split are returned.
func (m *MagmaSat) DissolvedVolatiles(pressure, tempC float64, c Composition, fl FluidComposition) (DissolvedVolatiles, error) {
	pMPa := BarsToMPa(pressure)
	comp := m.Preprocess(c)

	wtH2O := fl.XH2O * H2O.MolarMass()
	wtCO2 := fl.XCO2 * CO2.MolarMass()
	wtSum := wtH2O + wtCO2
	if wtSum <= 0 {
		return DissolvedVolatiles{}, &InputError{Message: "magmasat: fluid composition holds no volatiles"}
	}

	trial := comp
	for load := 0.0; ; load += msLoadStep {
		fm, err := m.fluidMass(tempC, pMPa, trial)
		if err != nil {
			return DissolvedVolatiles{}, err
		}
		if fm > msFluidTiny {
			break
		}
		if load >= msLoadMax {
			return DissolvedVolatiles{}, &SaturationError{Message: fmt.Sprintf(
				"magmasat: no fluid phase at %g MPa with up to %g wt%% added volatiles", pMPa, msLoadMax)}
		}
		t := comp.Clone()
		t["H2O"] += (load + msLoadStep) * wtH2O / wtSum
		t["CO2"] += (load + msLoadStep) * wtCO2 / wtSum
		trial = t.NormalizeFixedVolatiles()
	}

	// measure redistributes the volatile load so that g of it is water,
	// and reports the resulting fluid CO2 mole fraction. A split whose
	// fluid redissolves entirely measures as zero.
	tot := trial["H2O"] + trial["CO2"]
	measure := func(g float64) (float64, PhaseAssemblage, error) {
		t := comp.Clone()
		t["H2O"] = g * tot
		t["CO2"] = (1 - g) * tot
		a, err := m.equilibrate(tempC, pMPa, t.NormalizeFixedVolatiles())
		if err != nil {
			return 0, nil, err
		}
		x, _ := rawFluidXCO2(a["fluid"])
		return x, a, nil
	}

	// Raising the water share of the load lowers the fluid CO2 fraction.
	// Walk the share up until the fluid drops past the target, backing
	// off to a finer step each time it does.
	g := 0.0
	for _, step := range msShareSteps {
		for g+step <= 1 {
			x, _, err := measure(g + step)
			if err != nil {
				return DissolvedVolatiles{}, err
			}
			if x < fl.XCO2 {
				break
			}
			g += step
		}
	}
	x, a, err := measure(g)
	if err != nil {
		return DissolvedVolatiles{}, err
	}
	if math.Abs(x-fl.XCO2) > XFluidResolution {
		return DissolvedVolatiles{}, &ConvergenceError{
			Op:  "magmasat dissolved volatiles",
			Err: fmt.Errorf("fluid CO2 fraction %g missed target %g", x, fl.XCO2),
		}
	}
	m.log.WithFields(logrus.Fields{
		"pressureMPa": pMPa, "H2OShare": g, "fluidXCO2": x,
	}).Debug("magmasat dissolved volatiles")
	return liquidVolatiles(a)
}

// isobar sweep parameters, wt%.
const (
	msIsobarH2OMax  = 15.5
	msIsobarH2OStep = 0.5
	msIsobarCO2Step = 0.1
	msIsobarCO2Max  = 10.0
)

// Isobars maps out constant-pressure dissolved H2O-CO2 curves. For each
// trial water content the bulk CO2 is raised in small increments until
// the melt saturates at or above the target pressure, and the liquid
// contents at the target pressure are recorded.
func (m *MagmaSat) Isobars(tempC float64, c Composition, pressures []float64) ([]Isobar, error) {
	if len(pressures) == 0 {
		return nil, &InputError{Message: "magmasat: at least one isobar pressure is required"}
	}
	comp := m.Preprocess(c)
	isobars := make([]Isobar, 0, len(pressures))
	for _, p := range pressures {
		if p <= 0 {
			return nil, &InputError{Message: "magmasat: isobar pressures must be positive"}
		}
		iso := Isobar{Pressure: p}
		for h := 0.0; h <= msIsobarH2OMax; h += msIsobarH2OStep {
			pt, ok, err := m.isobarPoint(tempC, comp, p, h)
			if err != nil {
				return nil, err
			}
			if !ok {
				// This water content alone oversaturates the melt at
				// the isobar pressure; the curve ends here.
				break
			}
			iso.Points = append(iso.Points, pt)
			m.log.WithFields(logrus.Fields{
				"pressure": p, "H2O": pt.H2O, "CO2": pt.CO2,
			}).Debug("magmasat isobar point")
		}
		isobars = append(isobars, iso)
	}
	return isobars, nil
}

// isobarPoint finds the dissolved volatile pair on the pressure-bars
// isobar at bulk water content h. ok is false when the melt saturates
// above the isobar with no CO2 at all.
func (m *MagmaSat) isobarPoint(tempC float64, c Composition, bars, h float64) (VolatilePoint, bool, error) {
	pMPa := BarsToMPa(bars)
	for co2 := 0.0; co2 <= msIsobarCO2Max; co2 += msIsobarCO2Step {
		trial := c.Clone()
		trial["H2O"] = h
		trial["CO2"] = co2
		trial = trial.NormalizeFixedVolatiles()
		a, err := m.equilibrate(tempC, pMPa, trial)
		if err != nil {
			return VolatilePoint{}, false, err
		}
		if a["fluid"].Mass <= msFluidTiny {
			continue
		}
		if co2 == 0 && h > 0 {
			// Saturated by water alone above this pressure.
			return VolatilePoint{}, false, nil
		}
		dv, err := liquidVolatiles(a)
		if err != nil {
			return VolatilePoint{}, false, err
		}
		return VolatilePoint{
			Pressure: bars,
			XFluid:   fluidCompFromPhase(a["fluid"]),
			H2O:      dv.H2O,
			CO2:      dv.CO2,
		}, true, nil
	}
	return VolatilePoint{}, false, &SaturationError{Message: fmt.Sprintf(
		"magmasat: no CO2 content up to %g wt%% saturates the melt at %g bars", msIsobarCO2Max, bars)}
}
