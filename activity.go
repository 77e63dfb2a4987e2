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

// IdealActivity is the ideal-solution activity model: the activity of a
// melt component equals its mole fraction.
type IdealActivity struct{}

// Activity returns x unchanged.
func (IdealActivity) Activity(x float64) float64 { return x }

// CheckCalibration always reports in-range: the ideal model has no
// fitted window.
func (IdealActivity) CheckCalibration(x float64) []CalibrationResult {
	return []CalibrationResult{
		{Component: "activity:ideal", Parameter: "mole fraction", Value: x, InRange: true},
	}
}
