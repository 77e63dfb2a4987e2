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

package dixon

import (
	"errors"
	"math"
	"testing"

	"github.com/openvolc/solubility"
)

func basalt(t *testing.T) solubility.Composition {
	t.Helper()
	c, err := solubility.NewComposition(map[string]float64{
		"SiO2": 49.0, "TiO2": 1.8, "Al2O3": 16.0, "Fe2O3": 2.0,
		"FeO": 8.0, "MnO": 0.17, "MgO": 7.5, "CaO": 11.0,
		"Na2O": 2.8, "K2O": 0.4, "P2O5": 0.2, "H2O": 2.0, "CO2": 0.05,
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestXCO3StdPiecewise(t *testing.T) {
	// Below the breakpoint the standard-state carbonate fraction falls
	// with silica; above it it is constant.
	if xCO3Std(40) <= xCO3Std(45) {
		t.Error("carbonate fraction should fall with silica below the breakpoint")
	}
	if xCO3Std(50) != xCO3Std(60) {
		t.Error("carbonate fraction should be constant above the breakpoint")
	}
	// The two branches meet near the breakpoint.
	if math.Abs(xCO3Std(sio2Breakpoint)-xCO3Std(sio2Breakpoint-1e-9)) > 1e-7 {
		t.Error("discontinuity at the silica breakpoint")
	}
}

func TestCarbonSaturationRoundTrip(t *testing.T) {
	m := NewCarbon(nil)
	c := basalt(t)
	p, err := m.SaturationPressure(1200, c)
	if err != nil {
		t.Fatal(err)
	}
	w, err := m.DissolvedVolatiles(p, 1200, c, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(w-0.05) > 1e-3 {
		t.Errorf("round trip: expected 0.05 wt%% CO2, got %g", w)
	}
}

func TestWaterSpeciation(t *testing.T) {
	// At a typical molecular-water content the hydroxyl fraction is
	// physical and nonzero.
	xOH, err := speciate(0.03)
	if err != nil {
		t.Fatal(err)
	}
	if xOH <= 0 || xOH >= 1-0.03 {
		t.Errorf("hydroxyl fraction out of range: %g", xOH)
	}
	// More molecular water pushes more hydroxyl into the melt.
	xOH2, err := speciate(0.06)
	if err != nil {
		t.Fatal(err)
	}
	if xOH2 <= xOH {
		t.Errorf("expected hydroxyl to grow with molecular water: %g then %g", xOH, xOH2)
	}
}

func TestWaterDissolvedPlausible(t *testing.T) {
	w, err := NewWater(nil).DissolvedVolatiles(1000, 1200, basalt(t), 1)
	if err != nil {
		t.Fatal(err)
	}
	// Basaltic water solubility at 1000 bars sits in the low wt% range.
	if w < 1 || w > 8 {
		t.Errorf("implausible dissolved H2O %g wt%% at 1000 bars", w)
	}
}

func TestWaterSaturationLowPressure(t *testing.T) {
	// A melt holding 1 wt% H2O saturates near 90 bars, far below the
	// inversion's secant seeds; the bracketed fallback must still find
	// the root instead of stalling on the degenerate low-pressure branch.
	m := NewWater(nil)
	c := basalt(t).Clone()
	c["H2O"] = 1.0
	p, err := m.SaturationPressure(1100, c)
	if err != nil {
		t.Fatal(err)
	}
	if p <= 0 || p > 500 {
		t.Fatalf("implausible saturation pressure %g bars for 1 wt%% H2O", p)
	}
	w, err := m.DissolvedVolatiles(p, 1100, c, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(w-1.0) > 1e-3 {
		t.Errorf("round trip: expected 1.0 wt%% H2O, got %g", w)
	}
}

func TestCarbonUnreachableContent(t *testing.T) {
	// The carbon law's dissolved content peaks below 0.1 wt% CO2 for
	// this melt; a larger target can never saturate at any pressure.
	m := NewCarbon(nil)
	c := basalt(t).Clone()
	c["CO2"] = 0.5
	var satErr *solubility.SaturationError
	if _, err := m.SaturationPressure(1200, c); !errors.As(err, &satErr) {
		t.Errorf("expected SaturationError for an unreachable CO2 content, got %v", err)
	}
}

func TestWaterSaturationRoundTrip(t *testing.T) {
	m := NewWater(nil)
	c := basalt(t)
	p, err := m.SaturationPressure(1200, c)
	if err != nil {
		t.Fatal(err)
	}
	w, err := m.DissolvedVolatiles(p, 1200, c, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(w-2.0) > 1e-3 {
		t.Errorf("round trip: expected 2.0 wt%% H2O, got %g", w)
	}
}

func TestZeroFluidFraction(t *testing.T) {
	c := basalt(t)
	wc, err := NewCarbon(nil).DissolvedVolatiles(2000, 1200, c, 0)
	if err != nil {
		t.Fatal(err)
	}
	ww, err := NewWater(nil).DissolvedVolatiles(2000, 1200, c, 0)
	if err != nil {
		t.Fatal(err)
	}
	if wc != 0 || ww != 0 {
		t.Errorf("expected zero dissolved volatiles at zero fluid fraction, got CO2=%g H2O=%g", wc, ww)
	}
}
