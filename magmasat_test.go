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
	"errors"
	"math"
	"testing"

	"github.com/ctessum/unit"
)

// stubEngine is a toy equilibrium engine. A fluid phase exists below a
// bulk-dependent saturation pressure; the melt keeps a pressure-scaled
// share of its volatiles and exsolves the rest.
type stubEngine struct {
	bulk  Composition
	calls int
}

// satMPa is the stub's saturation pressure: 50 MPa per wt% of total
// volatiles.
func (e *stubEngine) satMPa() float64 {
	return 50 * (e.bulk["H2O"] + e.bulk["CO2"])
}

func (e *stubEngine) SetBulkComposition(c Composition) error {
	e.bulk = c.Clone()
	return nil
}

func (e *stubEngine) Equilibrate(tempC float64, p *unit.Unit) (PhaseAssemblage, error) {
	e.calls++
	if e.bulk == nil {
		return nil, errors.New("no bulk composition set")
	}
	pressureMPa, err := InMPa(p)
	if err != nil {
		return nil, err
	}
	sat := e.satMPa()
	liquid := e.bulk.Clone()
	a := PhaseAssemblage{}
	if pressureMPa < sat {
		frac := pressureMPa / sat
		liquid["H2O"] = e.bulk["H2O"] * frac
		liquid["CO2"] = e.bulk["CO2"] * frac
		exH2O := e.bulk["H2O"] - liquid["H2O"]
		exCO2 := e.bulk["CO2"] - liquid["CO2"]
		a["fluid"] = Phase{
			Mass: exH2O + exCO2,
			Composition: Composition{
				"H2O": 100 * exH2O / (exH2O + exCO2),
				"CO2": 100 * exCO2 / (exH2O + exCO2),
			},
		}
	}
	a["liquid"] = Phase{Mass: liquid.Sum(), Composition: liquid}
	return a, nil
}

func TestMagmaSatSaturationPressure(t *testing.T) {
	m := NewMagmaSat(&stubEngine{})
	c := testBasalt(t) // 2.1 wt% volatiles: stub saturates at 105 MPa

	sat, err := m.SaturationPressure(1200, c)
	if err != nil {
		t.Fatal(err)
	}
	// The coarse-to-fine search lands on the highest whole MPa with a
	// fluid phase, reported in bars.
	if math.Abs(sat.Pressure-MPaToBars(104)) > 1e-6 {
		t.Errorf("expected saturation near %g bars, got %g", MPaToBars(104), sat.Pressure)
	}
	if sat.Fluid.XCO2 <= 0 || sat.Fluid.XCO2 >= 1 {
		t.Errorf("expected a mixed fluid, got XCO2=%g", sat.Fluid.XCO2)
	}
}

func TestMagmaSatUndersaturated(t *testing.T) {
	m := NewMagmaSat(&stubEngine{})
	c := testBasalt(t).Clone()
	c["H2O"], c["CO2"] = 0.001, 0 // saturates below the search floor
	var satErr *SaturationError
	if _, err := m.SaturationPressure(1200, c); !errors.As(err, &satErr) {
		t.Errorf("expected SaturationError, got %v", err)
	}
}

func TestMagmaSatNoEngine(t *testing.T) {
	m := NewMagmaSat(nil)
	var inputErr *InputError
	fl := FluidComposition{XCO2: 0.5, XH2O: 0.5}
	if _, err := m.DissolvedVolatiles(1000, 1200, testBasalt(t), fl); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError, got %v", err)
	}
}

func TestMagmaSatDissolvedVolatiles(t *testing.T) {
	m := NewMagmaSat(&stubEngine{})
	c := testBasalt(t) // 2.1 wt% volatiles: stub saturates at 105 MPa

	// Request equilibrium with an equimolar fluid at 100 MPa. The stub's
	// fluid inherits the bulk volatile split, so the search must settle
	// on a bulk with equal H2O and CO2 mole counts, and the liquid keeps
	// 100/105 of the 2.1 wt% total.
	fl := FluidComposition{XCO2: 0.5, XH2O: 0.5}
	dv, err := m.DissolvedVolatiles(MPaToBars(100), 1200, c, fl)
	if err != nil {
		t.Fatal(err)
	}
	if different(dv.H2O+dv.CO2, 2.0, 1e-6) {
		t.Errorf("expected 2.0 wt%% total dissolved, got %g", dv.H2O+dv.CO2)
	}
	molRatio := (dv.CO2 / CO2.MolarMass()) / (dv.H2O / H2O.MolarMass())
	if different(molRatio, 1, 1e-3) {
		t.Errorf("expected an equimolar volatile split, got mole ratio %g", molRatio)
	}
}

func TestMagmaSatDissolvedVolatilesPureWater(t *testing.T) {
	m := NewMagmaSat(&stubEngine{})
	dv, err := m.DissolvedVolatiles(MPaToBars(100), 1200, testBasalt(t),
		FluidComposition{XCO2: 0, XH2O: 1})
	if err != nil {
		t.Fatal(err)
	}
	if dv.CO2 > 1e-9 {
		t.Errorf("pure-water fluid should leave no dissolved CO2, got %g", dv.CO2)
	}
	if dv.H2O <= 0 {
		t.Errorf("expected dissolved H2O, got %g", dv.H2O)
	}
}

func TestMagmaSatDissolvedVolatilesUnsaturable(t *testing.T) {
	m := NewMagmaSat(&stubEngine{})
	// Far above any saturation pressure the volatile load can buy: the
	// stub needs 50 wt% volatiles to saturate at 2500 MPa.
	var satErr *SaturationError
	_, err := m.DissolvedVolatiles(MPaToBars(2500), 1200, testBasalt(t),
		FluidComposition{XCO2: 0.5, XH2O: 0.5})
	if !errors.As(err, &satErr) {
		t.Errorf("expected SaturationError, got %v", err)
	}
}

func TestMagmaSatEquilibriumFluidComp(t *testing.T) {
	m := NewMagmaSat(&stubEngine{})
	c := testBasalt(t)

	// Undersaturated: no fluid.
	fl, err := m.EquilibriumFluidComp(MPaToBars(500), 1200, c)
	if err != nil {
		t.Fatal(err)
	}
	if fl.XCO2 != 0 || fl.XH2O != 0 {
		t.Errorf("expected no fluid above saturation, got %+v", fl)
	}

	// Saturated: a mixed fluid whose fractions sum to one at the
	// reporting resolution.
	fl, err = m.EquilibriumFluidComp(MPaToBars(50), 1200, c)
	if err != nil {
		t.Fatal(err)
	}
	if fl.XCO2 <= 0 || fl.XH2O <= 0 {
		t.Errorf("expected a mixed fluid, got %+v", fl)
	}
	if math.Abs(fl.XCO2+fl.XH2O-1) > XFluidResolution {
		t.Errorf("fluid fractions should sum to 1, got %g", fl.XCO2+fl.XH2O)
	}
}

func TestMagmaSatIsobars(t *testing.T) {
	m := NewMagmaSat(&stubEngine{})
	c := testBasalt(t)
	isobars, err := m.Isobars(1200, c, []float64{MPaToBars(100)})
	if err != nil {
		t.Fatal(err)
	}
	if len(isobars) != 1 {
		t.Fatalf("expected 1 isobar, got %d", len(isobars))
	}
	if len(isobars[0].Points) == 0 {
		t.Fatal("expected isobar points")
	}
	for _, pt := range isobars[0].Points {
		if pt.H2O < 0 || pt.CO2 < 0 {
			t.Errorf("negative dissolved volatiles: %+v", pt)
		}
		// Every recorded point coexists with a fluid phase, so the
		// fluid split must be populated.
		if math.Abs(pt.XFluid.XCO2+pt.XFluid.XH2O-1) > XFluidResolution {
			t.Errorf("fluid fractions should sum to 1 at %+v", pt)
		}
		if pt.CO2 > 0 && pt.XFluid.XCO2 <= 0 {
			t.Errorf("CO2-bearing melt should exsolve a CO2-bearing fluid: %+v", pt)
		}
	}
	var inputErr *InputError
	if _, err := m.Isobars(1200, c, nil); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for no pressures, got %v", err)
	}
}

func TestPressureUnitConversions(t *testing.T) {
	if different(BarsToMPa(2000), 200, testTolerance) {
		t.Errorf("expected 200 MPa, got %g", BarsToMPa(2000))
	}
	if different(MPaToBars(200), 2000, testTolerance) {
		t.Errorf("expected 2000 bars, got %g", MPaToBars(200))
	}
	if different(MPaToBars(BarsToMPa(1234.5)), 1234.5, testTolerance) {
		t.Errorf("round trip drifted: %g", MPaToBars(BarsToMPa(1234.5)))
	}
}

func TestPressureDimensionCheck(t *testing.T) {
	v, err := InBars(Bars(123))
	if err != nil {
		t.Fatal(err)
	}
	if different(v, 123, testTolerance) {
		t.Errorf("expected 123 bars back, got %g", v)
	}
	v, err = InMPa(Bars(2000))
	if err != nil {
		t.Fatal(err)
	}
	if different(v, 200, testTolerance) {
		t.Errorf("expected 200 MPa, got %g", v)
	}

	// A bare mass must not pass for a pressure.
	mass := unit.New(5, unit.Dimensions{unit.MassDim: 1})
	var inputErr *InputError
	if _, err := InMPa(mass); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for non-pressure dimensions, got %v", err)
	}
	if _, err := InBars(mass); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for non-pressure dimensions, got %v", err)
	}
}
