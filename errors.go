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

import "fmt"

// InputError reports malformed input: wrong shape, mutually exclusive
// options both supplied, or a value outside its resolvable range.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("solubility: invalid input: %s", e.Message)
}

// SaturationError reports that a sample cannot reach fluid saturation
// within the pressure search domain.
type SaturationError struct {
	Message string
}

func (e *SaturationError) Error() string {
	return fmt.Sprintf("solubility: %s", e.Message)
}

// ConvergenceError reports that an internal numerical procedure (an
// equation-of-state volume solve, a speciation equilibrium, or a
// saturation-pressure inversion) exceeded its iteration budget. The
// underlying solver failure is available through Unwrap.
type ConvergenceError struct {
	Op  string // the operation that failed to converge
	Err error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("solubility: %s did not converge: %v", e.Op, e.Err)
}

func (e *ConvergenceError) Unwrap() error { return e.Err }
