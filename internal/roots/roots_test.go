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

package roots

import (
	"errors"
	"math"
	"testing"
)

func TestSecant(t *testing.T) {
	f := func(x float64) (float64, error) { return x*x - 2, nil }
	x, err := Secant(f, 1, 2, 1e-12, 100)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-math.Sqrt2) > 1e-10 {
		t.Errorf("expected %g, got %g", math.Sqrt2, x)
	}
}

func TestSecantNoConvergence(t *testing.T) {
	// No real root.
	f := func(x float64) (float64, error) { return x*x + 1, nil }
	_, err := Secant(f, 0, 1, 1e-12, 25)
	var nc *NoConvergenceError
	if !errors.As(err, &nc) {
		t.Fatalf("expected NoConvergenceError, got %v", err)
	}
	if nc.Method != "secant" {
		t.Errorf("expected method secant, got %s", nc.Method)
	}
}

func TestSecantPropagatesEvaluationError(t *testing.T) {
	evalErr := errors.New("bad evaluation")
	f := func(x float64) (float64, error) { return 0, evalErr }
	if _, err := Secant(f, 0, 1, 1e-12, 25); !errors.Is(err, evalErr) {
		t.Errorf("expected evaluation error to propagate, got %v", err)
	}
}

func TestBrent(t *testing.T) {
	tests := []struct {
		f       func(float64) (float64, error)
		a, b, x float64
	}{
		{func(x float64) (float64, error) { return x*x*x - x - 2, nil }, 1, 2, 1.5213797068045676},
		{func(x float64) (float64, error) { return math.Cos(x) - x, nil }, 0, 1, 0.7390851332151607},
		{func(x float64) (float64, error) { return math.Exp(x) - 5, nil }, 0, 3, math.Log(5)},
	}
	for i, tt := range tests {
		x, err := Brent(tt.f, tt.a, tt.b, 1e-12, 100)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if math.Abs(x-tt.x) > 1e-9 {
			t.Errorf("case %d: expected %g, got %g", i, tt.x, x)
		}
	}
}

func TestBrentRequiresBracket(t *testing.T) {
	f := func(x float64) (float64, error) { return x*x + 1, nil }
	if _, err := Brent(f, -1, 1, 1e-12, 100); err == nil {
		t.Error("expected an error for an unbracketed root")
	}
}

func TestNewton2D(t *testing.T) {
	// x² + y² = 5, x·y = 2 has the solution (2, 1) in the box.
	f := func(x, y float64) (float64, float64, error) {
		return x*x + y*y - 5, x*y - 2, nil
	}
	x, y, err := Newton2D(f, 1.5, 0.5, 0.1, 10, 0.1, 10, 1e-12, 100)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-2) > 1e-8 || math.Abs(y-1) > 1e-8 {
		t.Errorf("expected (2, 1), got (%g, %g)", x, y)
	}
}

func TestNewton2DStartOnBound(t *testing.T) {
	// Starting on the upper x bound, the finite-difference probe must
	// step inward; an outward probe would clamp back onto the iterate
	// and zero out a Jacobian column.
	f := func(x, y float64) (float64, float64, error) {
		return x*x + y*y - 5, x*y - 2, nil
	}
	x, y, err := Newton2D(f, 2.5, 0.5, 0.1, 2.5, 0.1, 10, 1e-12, 100)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-2) > 1e-8 || math.Abs(y-1) > 1e-8 {
		t.Errorf("expected (2, 1), got (%g, %g)", x, y)
	}
}

func TestNewton2DStaysInBox(t *testing.T) {
	// The root (3, 3) of this system lies outside the box, so the
	// solver must fail rather than wander out.
	f := func(x, y float64) (float64, float64, error) {
		return x - 3, y - 3, nil
	}
	_, _, err := Newton2D(f, 1, 1, 0, 2, 0, 2, 1e-12, 50)
	var nc *NoConvergenceError
	if !errors.As(err, &nc) {
		t.Errorf("expected NoConvergenceError, got %v", err)
	}
}
