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

func TestIdealGasFugacity(t *testing.T) {
	f, err := IdealGas{}.Fugacity(2000, 1200, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if different(f, 500, testTolerance) {
		t.Errorf("expected 500, got %g", f)
	}
}

func TestIdealGasRejectsBadFraction(t *testing.T) {
	var inputErr *InputError
	if _, err := (IdealGas{}).Fugacity(2000, 1200, 1.5); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError, got %v", err)
	}
	if _, err := (IdealGas{}).Fugacity(2000, 1200, -0.1); !errors.As(err, &inputErr) {
		t.Errorf("expected InputError, got %v", err)
	}
}

func TestMRKZeroFraction(t *testing.T) {
	for _, s := range []Species{H2O, CO2} {
		f, err := NewMRK(s).Fugacity(2000, 800, 0)
		if err != nil {
			t.Fatal(err)
		}
		if f != 0 {
			t.Errorf("%v: expected zero fugacity at zero mole fraction, got %g", s, f)
		}
	}
}

func TestMRKPositive(t *testing.T) {
	for _, s := range []Species{H2O, CO2} {
		for _, x := range []float64{0.1, 0.5, 1.0} {
			f, err := NewMRK(s).Fugacity(2000, 800, x)
			if err != nil {
				t.Fatalf("%v at x=%g: %v", s, x, err)
			}
			if f <= 0 {
				t.Errorf("%v at x=%g: expected positive fugacity, got %g", s, x, f)
			}
		}
	}
}

func TestMRKMonotonicInPressure(t *testing.T) {
	m := NewMRK(CO2)
	var prev float64
	for i, p := range []float64{500, 1000, 2000, 4000} {
		f, err := m.Fugacity(p, 800, 1)
		if err != nil {
			t.Fatalf("p=%g: %v", p, err)
		}
		if i > 0 && f <= prev {
			t.Errorf("fugacity should increase with pressure: f(%g)=%g after %g", p, f, prev)
		}
		prev = f
	}
}

func TestMRKHighTemperatureReduction(t *testing.T) {
	// Above the mixture calibration the fugacity reduces to the scaled
	// pure-species value.
	m := NewMRK(H2O)
	pure, err := m.Fugacity(3000, 1200, 1)
	if err != nil {
		t.Fatal(err)
	}
	mixed, err := m.Fugacity(3000, 1200, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if different(mixed, 0.4*pure, 1e-9) {
		t.Errorf("expected %g, got %g", 0.4*pure, mixed)
	}
}

func TestMRKDeepRegimeSolves(t *testing.T) {
	// The dense branch of the volume solve: high pressure, low
	// temperature.
	f, err := NewMRK(CO2).Fugacity(25000, 500, 1)
	if err != nil {
		t.Fatal(err)
	}
	if f <= 0 {
		t.Errorf("expected a positive fugacity, got %g", f)
	}
}

func TestMRKCheckCalibration(t *testing.T) {
	r := NewMRK(CO2).CheckCalibration(60000, 1200)
	var sawPressure bool
	for _, cr := range r {
		if cr.Parameter == "pressure" {
			sawPressure = true
			if cr.InRange {
				t.Errorf("60000 bars should be out of range")
			}
		}
	}
	if !sawPressure {
		t.Error("expected a pressure calibration result")
	}
}

func TestIdealActivity(t *testing.T) {
	a := IdealActivity{}
	if a.Activity(0.37) != 0.37 {
		t.Errorf("expected identity activity, got %g", a.Activity(0.37))
	}
	for _, r := range a.CheckCalibration(0.5) {
		if !r.InRange {
			t.Errorf("ideal activity is never out of range: %+v", r)
		}
	}
}
