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
	"testing"
)

// henryLaw is a linear solubility law used to exercise the mixed-fluid
// coordinator with analytically known solutions: w = k·p·x.
type henryLaw struct {
	species Species
	k       float64 // wt% per bar
}

func (h *henryLaw) Species() Species                     { return h.species }
func (h *henryLaw) Preprocess(c Composition) Composition { return c.Clone() }

func (h *henryLaw) DissolvedVolatiles(p, tempC float64, c Composition, xFluid float64) (float64, error) {
	if xFluid < 0 || xFluid > 1 {
		return 0, &InputError{Message: "fluid mole fraction must be in [0,1]"}
	}
	return h.k * p * xFluid, nil
}

func (h *henryLaw) SaturationPressure(tempC float64, c Composition) (float64, error) {
	return InvertSaturation(c.Get(h.species.String()), func(p float64) (float64, error) {
		return h.k * p, nil
	})
}

func (h *henryLaw) CheckCalibration(p, tempC float64) []CalibrationResult {
	return []CalibrationResult{CheckRange("law:henry-"+h.species.String(), "pressure", p, 0, 1e9)}
}

func testMixed(t *testing.T) *MixedFluid {
	t.Helper()
	m, err := NewMixedFluid(
		&henryLaw{species: CO2, k: 5e-5},
		&henryLaw{species: H2O, k: 1e-3},
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewMixedFluidValidatesSpeciesOrder(t *testing.T) {
	var inputErr *InputError
	_, err := NewMixedFluid(
		&henryLaw{species: H2O, k: 1e-3},
		&henryLaw{species: CO2, k: 5e-5},
	)
	if !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for swapped species, got %v", err)
	}
	if _, err := NewMixedFluid(nil, nil); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for nil laws, got %v", err)
	}
}

func TestFluidCompositionFromSlice(t *testing.T) {
	fl, err := FluidCompositionFromSlice([]float64{0.3, 0.7})
	if err != nil {
		t.Fatal(err)
	}
	if fl.XCO2 != 0.3 || fl.XH2O != 0.7 {
		t.Errorf("unexpected composition %+v", fl)
	}
	var inputErr *InputError
	if _, err := FluidCompositionFromSlice([]float64{1}); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for wrong length, got %v", err)
	}
	if _, err := FluidCompositionFromSlice([]float64{0.3, 0.6}); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for fractions not summing to 1, got %v", err)
	}
}

func TestMixedSaturationPressure(t *testing.T) {
	m := testMixed(t)
	c := testBasalt(t) // 2 wt% H2O, 0.1 wt% CO2

	// With the Henry constants above, each species alone saturates at
	// 2000 bars, so the joint solution is p=4000, XCO2=0.5.
	sat, err := m.SaturationPressure(1200, c)
	if err != nil {
		t.Fatal(err)
	}
	if different(sat.Pressure, 4000, 1e-6) {
		t.Errorf("expected saturation at 4000 bars, got %g", sat.Pressure)
	}
	if different(sat.Fluid.XCO2, 0.5, 1e-6) {
		t.Errorf("expected fluid XCO2 0.5, got %g", sat.Fluid.XCO2)
	}

	// At the saturation point the melt holds exactly the bulk
	// volatiles.
	dv, err := m.DissolvedVolatiles(sat.Pressure, 1200, c, sat.Fluid)
	if err != nil {
		t.Fatal(err)
	}
	if different(dv.CO2, 0.1, 1e-6) || different(dv.H2O, 2.0, 1e-6) {
		t.Errorf("expected bulk volatiles at saturation, got %+v", dv)
	}
}

func TestMixedSaturationSingleSpecies(t *testing.T) {
	m := testMixed(t)
	c := testBasalt(t).Clone()
	c["H2O"] = 0

	sat, err := m.SaturationPressure(1200, c)
	if err != nil {
		t.Fatal(err)
	}
	if different(sat.Pressure, 2000, 1e-6) {
		t.Errorf("expected pure-CO2 saturation at 2000 bars, got %g", sat.Pressure)
	}
	if sat.Fluid.XCO2 != 1 || sat.Fluid.XH2O != 0 {
		t.Errorf("expected a pure CO2 fluid, got %+v", sat.Fluid)
	}
}

func TestMixedSaturationNoVolatiles(t *testing.T) {
	m := testMixed(t)
	c := testBasalt(t).Clone()
	c["H2O"], c["CO2"] = 0, 0
	var satErr *SaturationError
	if _, err := m.SaturationPressure(1200, c); !errors.As(err, &satErr) {
		t.Errorf("expected SaturationError, got %v", err)
	}
}

func TestEquilibriumFluidCompUndersaturated(t *testing.T) {
	m := testMixed(t)
	c := testBasalt(t)
	// Far above the 4000-bar saturation point no fluid exists.
	fl, err := m.EquilibriumFluidComp(8000, 1200, c)
	if err != nil {
		t.Fatal(err)
	}
	if fl.XCO2 != 0 || fl.XH2O != 0 {
		t.Errorf("expected the zero fluid composition, got %+v", fl)
	}
}

func TestEquilibriumFluidCompMassBalance(t *testing.T) {
	m := testMixed(t)
	c := testBasalt(t)
	fl, err := m.EquilibriumFluidComp(3000, 1200, c)
	if err != nil {
		t.Fatal(err)
	}
	if fl.XCO2 <= 0 || fl.XCO2 >= 1 {
		t.Fatalf("fluid XCO2 out of (0,1): %g", fl.XCO2)
	}
	// The lever rule must infer the same fluid fraction from both
	// species.
	dv, err := m.DissolvedVolatiles(3000, 1200, c, fl)
	if err != nil {
		t.Fatal(err)
	}
	xtCO2, xtH2O := totalMolFractions(c)
	xmCO2, xmH2O := meltMolFractions(c, dv)
	phiCO2 := (xtCO2 - xmCO2) / (fl.XCO2 - xmCO2)
	phiH2O := (xtH2O - xmH2O) / (fl.XH2O - xmH2O)
	if different(phiCO2, phiH2O, 1e-3) {
		t.Errorf("inconsistent fluid fractions: %g from CO2, %g from H2O", phiCO2, phiH2O)
	}
}

func TestIsobarsIsopleths(t *testing.T) {
	m := testMixed(t)
	c := testBasalt(t)
	isobars, isopleths, err := m.IsobarsIsopleths(1200, c, []float64{1000, 2000}, []float64{0, 0.5, 1}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(isobars) != 2 {
		t.Fatalf("expected 2 isobars, got %d", len(isobars))
	}
	for _, iso := range isobars {
		if len(iso.Points) != 5 {
			t.Errorf("isobar at %g bars: expected 5 points, got %d", iso.Pressure, len(iso.Points))
		}
		for _, pt := range iso.Points {
			if pt.H2O < 0 || pt.CO2 < 0 {
				t.Errorf("negative dissolved volatiles: %+v", pt)
			}
		}
	}
	if len(isopleths) != 3 {
		t.Fatalf("expected 3 isopleths, got %d", len(isopleths))
	}
	for _, iso := range isopleths {
		if len(iso.Points) != 5 {
			t.Errorf("isopleth at XCO2=%g: expected 5 points, got %d", iso.XFluidCO2, len(iso.Points))
		}
	}
}

func TestIsobarsIsoplethsValidation(t *testing.T) {
	m := testMixed(t)
	c := testBasalt(t)
	var inputErr *InputError
	if _, _, err := m.IsobarsIsopleths(1200, c, nil, []float64{0.5}, 5); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for empty pressures, got %v", err)
	}
	if _, _, err := m.IsobarsIsopleths(1200, c, []float64{-5}, []float64{0.5}, 5); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for a negative pressure, got %v", err)
	}
	if _, _, err := m.IsobarsIsopleths(1200, c, []float64{1000}, []float64{1.5}, 5); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for a fraction above 1, got %v", err)
	}
	if _, _, err := m.IsobarsIsopleths(1200, c, []float64{1000}, []float64{0.5}, 1); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError for a one-sample grid, got %v", err)
	}
}

func TestFluidPresence(t *testing.T) {
	law := &henryLaw{species: H2O, k: 1e-3}
	c := testBasalt(t) // saturates at 2000 bars
	s, err := FluidPresence(law, 1000, 1200, c)
	if err != nil {
		t.Fatal(err)
	}
	if s != Saturated {
		t.Errorf("expected saturated below the saturation pressure, got %v", s)
	}
	s, err = FluidPresence(law, 3000, 1200, c)
	if err != nil {
		t.Fatal(err)
	}
	if s != Undersaturated {
		t.Errorf("expected undersaturated above the saturation pressure, got %v", s)
	}
}
