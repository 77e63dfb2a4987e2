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

// Package roots implements the scalar and two-dimensional root finders
// used by the solubility laws and the mixed-fluid coordinator. All
// solvers carry an iteration ceiling and report failure through
// NoConvergenceError rather than returning a best guess.
package roots

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// A Func is a scalar function whose root is sought. An error return
// aborts the solve immediately.
type Func func(x float64) (float64, error)

// NoConvergenceError reports a solver that exhausted its iteration
// budget or lost its bracket.
type NoConvergenceError struct {
	Method     string
	Iterations int
	Last       float64 // last iterate
	Residual   float64 // residual at the last iterate
}

func (e *NoConvergenceError) Error() string {
	return fmt.Sprintf("roots: %s failed to converge after %d iterations (x=%g, f=%g)",
		e.Method, e.Iterations, e.Last, e.Residual)
}

// Secant finds a root of f starting from the two seed points x0 and x1.
// It stops when the step size falls below tol·(1+|x|) or the residual
// magnitude falls below tol, and fails with a NoConvergenceError after
// maxIter iterations or when the secant slope degenerates.
func Secant(f Func, x0, x1, tol float64, maxIter int) (float64, error) {
	f0, err := f(x0)
	if err != nil {
		return 0, err
	}
	if math.Abs(f0) < tol {
		return x0, nil
	}
	f1, err := f(x1)
	if err != nil {
		return 0, err
	}
	for i := 0; i < maxIter; i++ {
		if math.Abs(f1) < tol {
			return x1, nil
		}
		denom := f1 - f0
		if denom == 0 || math.IsNaN(denom) {
			return 0, &NoConvergenceError{Method: "secant", Iterations: i, Last: x1, Residual: f1}
		}
		x2 := x1 - f1*(x1-x0)/denom
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			return 0, &NoConvergenceError{Method: "secant", Iterations: i, Last: x1, Residual: f1}
		}
		if math.Abs(x2-x1) < tol*(1+math.Abs(x2)) {
			return x2, nil
		}
		x0, f0 = x1, f1
		x1 = x2
		f1, err = f(x1)
		if err != nil {
			return 0, err
		}
	}
	return 0, &NoConvergenceError{Method: "secant", Iterations: maxIter, Last: x1, Residual: f1}
}

// Brent finds a root of f on the bracket [a, b] using Brent's method
// (inverse quadratic interpolation guarded by bisection). f(a) and f(b)
// must differ in sign.
func Brent(f Func, a, b, tol float64, maxIter int) (float64, error) {
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if fa*fb > 0 {
		return 0, &NoConvergenceError{Method: "brent", Iterations: 0, Last: b, Residual: fb}
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}
	c, fc := a, fa
	var d float64
	mflag := true
	for i := 0; i < maxIter; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b, nil
		}
		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			s = b - fb*(b-a)/(fb-fa)
		}
		lo, hi := (3*a+b)/4, b
		if lo > hi {
			lo, hi = hi, lo
		}
		if s < lo || s > hi ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < tol) ||
			(!mflag && math.Abs(c-d) < tol) {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}
		fs, err := f(s)
		if err != nil {
			return 0, err
		}
		d = c
		c, fc = b, fb
		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return 0, &NoConvergenceError{Method: "brent", Iterations: maxIter, Last: b, Residual: fb}
}

// A Func2D is a two-component residual over two unknowns.
type Func2D func(x, y float64) (fx, fy float64, err error)

// Newton2D finds a simultaneous root of the two-component residual f
// starting from (x0, y0), using a finite-difference Jacobian and a
// damped Newton step. The bounds clamp the iterates; pass ±Inf for an
// unconstrained variable.
func Newton2D(f Func2D, x0, y0, xmin, xmax, ymin, ymax, tol float64, maxIter int) (float64, float64, error) {
	x, y := x0, y0
	for i := 0; i < maxIter; i++ {
		fx, fy, err := f(x, y)
		if err != nil {
			return 0, 0, err
		}
		if math.Abs(fx) < tol && math.Abs(fy) < tol {
			return x, y, nil
		}
		hx := 1e-6 * math.Max(math.Abs(x), 1)
		hy := 1e-6 * math.Max(math.Abs(y), 1)
		// Probe inward when an iterate sits on a box bound; a clamped
		// forward probe would collapse onto x (or y) and zero out a
		// Jacobian column.
		xp, yp := x+hx, y+hy
		if xp > xmax {
			xp = x - hx
		}
		if yp > ymax {
			yp = y - hy
		}
		fxp, fyp, err := f(xp, y)
		if err != nil {
			return 0, 0, err
		}
		fxq, fyq, err := f(x, yp)
		if err != nil {
			return 0, 0, err
		}
		jac := mat.NewDense(2, 2, []float64{
			(fxp - fx) / (xp - x), (fxq - fx) / (yp - y),
			(fyp - fy) / (xp - x), (fyq - fy) / (yp - y),
		})
		rhs := mat.NewDense(2, 1, []float64{-fx, -fy})
		var step mat.Dense
		if err := step.Solve(jac, rhs); err != nil {
			return 0, 0, &NoConvergenceError{Method: "newton2d", Iterations: i, Last: x, Residual: fx}
		}
		dx, dy := step.At(0, 0), step.At(1, 0)
		// Damp steps that would leave the feasible box.
		for k := 0; k < 60; k++ {
			nx, ny := x+dx, y+dy
			if nx > xmin && nx < xmax && ny > ymin && ny < ymax {
				break
			}
			dx /= 2
			dy /= 2
		}
		x = clamp(x+dx, xmin, xmax)
		y = clamp(y+dy, ymin, ymax)
		if math.Abs(dx) < tol*(1+math.Abs(x)) && math.Abs(dy) < tol*(1+math.Abs(y)) {
			fx, fy, err = f(x, y)
			if err != nil {
				return 0, 0, err
			}
			if math.Abs(fx) < math.Sqrt(tol) && math.Abs(fy) < math.Sqrt(tol) {
				return x, y, nil
			}
			return 0, 0, &NoConvergenceError{Method: "newton2d", Iterations: i, Last: x, Residual: fx}
		}
	}
	fx, fy, err := f(x, y)
	if err != nil {
		return 0, 0, err
	}
	if math.Abs(fx) < tol && math.Abs(fy) < tol {
		return x, y, nil
	}
	return 0, 0, &NoConvergenceError{Method: "newton2d", Iterations: maxIter, Last: x, Residual: fx}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
