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

// Package models wires the published solubility laws into a named
// registry. Each entry is a constructor so that every lookup returns a
// fresh, unshared instance.
package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openvolc/solubility"
	"github.com/openvolc/solubility/models/allison"
	"github.com/openvolc/solubility/models/dixon"
	"github.com/openvolc/solubility/models/iaconomarziano"
	"github.com/openvolc/solubility/models/liu"
	"github.com/openvolc/solubility/models/moore"
	"github.com/openvolc/solubility/models/shishkina"
)

// single maps registry names to single-species law constructors. The
// Allison law defaults to the Sunset Crater calibration in its
// thermodynamic form; LoadConfig can select others.
var single = map[string]func() solubility.SolubilityLaw{
	"shishkina-carbon":      func() solubility.SolubilityLaw { return shishkina.NewCarbon(nil) },
	"shishkina-water":       func() solubility.SolubilityLaw { return shishkina.NewWater(nil) },
	"dixon-carbon":          func() solubility.SolubilityLaw { return dixon.NewCarbon(nil) },
	"dixon-water":           func() solubility.SolubilityLaw { return dixon.NewWater(nil) },
	"iaconomarziano-carbon": func() solubility.SolubilityLaw { return iaconomarziano.NewCarbon(iaconomarziano.HydrousCarbon) },
	"iaconomarziano-water":  func() solubility.SolubilityLaw { return iaconomarziano.NewWater(iaconomarziano.HydrousWater) },
	"liu-carbon":            func() solubility.SolubilityLaw { return liu.NewCarbon() },
	"liu-water":             func() solubility.SolubilityLaw { return liu.NewWater() },
	"moore-water":           func() solubility.SolubilityLaw { return moore.NewWater(nil) },
	"allison-carbon": func() solubility.SolubilityLaw {
		c, _ := allison.NewCarbon("sunset", allison.Thermodynamic, nil)
		return c
	},
}

// mixed maps registry names to the CO2 and H2O member laws of a
// mixed-fluid coordinator.
var mixed = map[string][2]string{
	"shishkina":      {"shishkina-carbon", "shishkina-water"},
	"dixon":          {"dixon-carbon", "dixon-water"},
	"iaconomarziano": {"iaconomarziano-carbon", "iaconomarziano-water"},
	"liu":            {"liu-carbon", "liu-water"},
	"mixed":          {"dixon-carbon", "dixon-water"},
}

// Names returns the single-species registry names, sorted.
func Names() []string {
	names := make([]string, 0, len(single))
	for n := range single {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MixedNames returns the mixed-fluid registry names, sorted.
func MixedNames() []string {
	names := make([]string, 0, len(mixed))
	for n := range mixed {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh instance of the named single-species law.
func Get(name string) (solubility.SolubilityLaw, error) {
	f, ok := single[name]
	if !ok {
		return nil, fmt.Errorf("models: invalid model %q; valid options are %s",
			name, strings.Join(Names(), ", "))
	}
	return f(), nil
}

// GetMixed returns a fresh mixed-fluid coordinator for the named
// family.
func GetMixed(name string) (*solubility.MixedFluid, error) {
	pair, ok := mixed[name]
	if !ok {
		return nil, fmt.Errorf("models: invalid mixed model %q; valid options are %s",
			name, strings.Join(MixedNames(), ", "))
	}
	co2, err := Get(pair[0])
	if err != nil {
		return nil, err
	}
	h2o, err := Get(pair[1])
	if err != nil {
		return nil, err
	}
	return solubility.NewMixedFluid(co2, h2o)
}
