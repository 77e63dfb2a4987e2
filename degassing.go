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
	"io/ioutil"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// SystemKind selects the degassing regime.
type SystemKind int

const (
	// ClosedSystem keeps the exsolved fluid in equilibrium with the
	// melt; the total volatile budget is conserved along the path.
	ClosedSystem SystemKind = iota
	// OpenSystem removes the fluid from the system as soon as it forms.
	OpenSystem
)

func (k SystemKind) String() string {
	if k == OpenSystem {
		return "open"
	}
	return "closed"
}

// A DegassingStep is one row of a degassing path.
type DegassingStep struct {
	Pressure          float64 // bars
	MeltH2O           float64 // dissolved wt%
	MeltCO2           float64 // dissolved wt%
	FluidH2O          float64 // fluid mole fraction
	FluidCO2          float64 // fluid mole fraction
	FluidMassFraction float64 // weight fraction of the whole system
}

type degassingConfig struct {
	step      float64
	floor     float64
	initVapor float64 // wt%
	log       *logrus.Logger
}

// A DegassingOption adjusts the integration of a degassing path.
type DegassingOption func(*degassingConfig)

// WithPressureStep sets the pressure decrement [bars] between steps.
// The default is 10 bars.
func WithPressureStep(bars float64) DegassingOption {
	return func(c *degassingConfig) { c.step = bars }
}

// WithFloor sets the pressure [bars] at which the path ends. The
// default is 1 bar.
func WithFloor(bars float64) DegassingOption {
	return func(c *degassingConfig) { c.floor = bars }
}

// WithInitialVapor starts a closed-system path with the given
// pre-existing vapor mass fraction [wt%] at the saturation pressure.
func WithInitialVapor(wtPercent float64) DegassingOption {
	return func(c *degassingConfig) { c.initVapor = wtPercent }
}

// WithLogger routes step-by-step progress to log.
func WithLogger(log *logrus.Logger) DegassingOption {
	return func(c *degassingConfig) { c.log = log }
}

// vapor-enrichment increments for the initial-vapor iteration.
const (
	enrichIncrement = 0.05 // wt% volatiles added per iteration
	enrichMaxIter   = 2000
)

// DegassingPath integrates volatile loss along decreasing pressure,
// from the melt's saturation pressure down to the floor pressure. At
// each step the melt/fluid split comes from one equilibrium
// fluid-composition solve plus one dissolved-volatiles evaluation. The
// returned sequence is strictly decreasing in pressure. The input
// composition is never mutated.
func DegassingPath(m *MixedFluid, tempC float64, c Composition, kind SystemKind, opts ...DegassingOption) ([]DegassingStep, error) {
	cfg := degassingConfig{step: 10, floor: 1, log: silentLogger()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.step <= 0 {
		return nil, &InputError{Message: "pressure step must be positive"}
	}
	if cfg.floor < 0 {
		return nil, &InputError{Message: "floor pressure must be non-negative"}
	}
	if cfg.initVapor < 0 {
		return nil, &InputError{Message: "initial vapor fraction must be non-negative"}
	}
	if cfg.initVapor > 0 && kind == OpenSystem {
		return nil, &InputError{Message: "initial vapor applies to closed-system paths only"}
	}

	comp := c.NormalizeFixedVolatiles()
	sat, err := m.SaturationPressure(tempC, comp)
	if err != nil {
		return nil, err
	}
	start := sat.Pressure
	if start <= cfg.floor {
		return nil, &SaturationError{Message: "melt is already undersaturated at the floor pressure"}
	}

	if cfg.initVapor > 0 {
		comp, err = enrichToInitialVapor(m, tempC, comp, start, sat.Fluid, cfg.initVapor)
		if err != nil {
			return nil, err
		}
	}

	n := int(math.Ceil((start-cfg.floor)/cfg.step)) + 1
	if n < 2 {
		n = 2
	}
	ramp := floats.Span(make([]float64, n), start, cfg.floor)

	steps := make([]DegassingStep, 0, n)
	for _, p := range ramp {
		totH2O, totCO2 := comp["H2O"], comp["CO2"]
		if totH2O+totCO2 <= 1e-10 {
			// Fully degassed: carry the melt forward unchanged.
			steps = append(steps, DegassingStep{
				Pressure: p, MeltH2O: totH2O, MeltCO2: totCO2,
			})
			continue
		}

		fl, err := m.fluidComp(p, tempC, comp)
		if err != nil {
			return nil, err
		}
		dv, err := m.DissolvedVolatiles(p, tempC, comp, fl)
		if err != nil {
			return nil, err
		}
		// The melt cannot hold more than the budget provides.
		dv.H2O = math.Min(dv.H2O, totH2O)
		dv.CO2 = math.Min(dv.CO2, totCO2)

		fmass := fluidMassFraction(comp, dv, fl)
		steps = append(steps, DegassingStep{
			Pressure:          p,
			MeltH2O:           dv.H2O,
			MeltCO2:           dv.CO2,
			FluidH2O:          fl.XH2O,
			FluidCO2:          fl.XCO2,
			FluidMassFraction: fmass,
		})
		cfg.log.WithFields(logrus.Fields{
			"pressure": p, "H2Omelt": dv.H2O, "CO2melt": dv.CO2, "fluid": fmass,
		}).Debug("degassing step")

		if kind == ClosedSystem && fmass <= 0 && p < start {
			// Degenerate fluid-free step; nothing further can change.
			break
		}
		if kind == OpenSystem {
			// The fluid is removed; the melt keeps only what stayed
			// dissolved.
			next := comp.Clone()
			next["H2O"] = dv.H2O
			next["CO2"] = dv.CO2
			comp = next.NormalizeFixedVolatiles()
		}
	}
	return steps, nil
}

// enrichToInitialVapor adds fluid-composition-weighted volatiles to the
// bulk in small increments until the fluid mass fraction at pressure p
// reaches target [wt%].
func enrichToInitialVapor(m *MixedFluid, tempC float64, c Composition, p float64, fl FluidComposition, target float64) (Composition, error) {
	wtCO2 := fl.XCO2 * CO2.MolarMass()
	wtH2O := fl.XH2O * H2O.MolarMass()
	wtSum := wtCO2 + wtH2O
	for i := 0; i < enrichMaxIter; i++ {
		flNow, err := m.fluidComp(p, tempC, c)
		if err != nil {
			return nil, err
		}
		dv, err := m.DissolvedVolatiles(p, tempC, c, flNow)
		if err != nil {
			return nil, err
		}
		if fluidMassFraction(c, dv, flNow)*100 >= target {
			return c, nil
		}
		next := c.Clone()
		next["CO2"] += enrichIncrement * wtCO2 / wtSum
		next["H2O"] += enrichIncrement * wtH2O / wtSum
		c = next.NormalizeFixedVolatiles()
	}
	return nil, &ConvergenceError{Op: "initial vapor enrichment", Err: &InputError{
		Message: "target vapor fraction not reached within the iteration budget"}}
}

// fluidMassFraction converts the lever-rule molar fluid fraction into a
// mass fraction of the whole system.
func fluidMassFraction(c Composition, dv DissolvedVolatiles, fl FluidComposition) float64 {
	xtCO2, xtH2O := totalMolFractions(c)
	xmCO2, xmH2O := meltMolFractions(c, dv)
	xtV := xtCO2 + xtH2O
	xmV := xmCO2 + xmH2O
	if xtV <= xmV || xmV >= 1 {
		return 0
	}
	phi := (xtV - xmV) / (1 - xmV) // molar fluid fraction
	mFluid := fl.XCO2*CO2.MolarMass() + fl.XH2O*H2O.MolarMass()
	mMelt := meltMeanMolarMass(c, dv)
	f := phi * mFluid / (phi*mFluid + (1-phi)*mMelt)
	if f < 0 {
		return 0
	}
	return f
}

// meltMeanMolarMass is the mean molar mass of the melt with the
// dissolved volatile contents substituted in.
func meltMeanMolarMass(c Composition, dv DissolvedVolatiles) float64 {
	cm := c.Clone()
	cm["CO2"] = dv.CO2
	cm["H2O"] = dv.H2O
	mol := cm.MolOxides()
	var mass float64
	for _, ox := range Oxides {
		mass += mol[ox] * OxideMass[ox]
	}
	return mass
}

// silentLogger is the default progress sink.
func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = ioutil.Discard
	return log
}
