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

package models

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/openvolc/solubility"
	"github.com/openvolc/solubility/models/allison"
	"github.com/openvolc/solubility/models/dixon"
	"github.com/openvolc/solubility/models/iaconomarziano"
	"github.com/openvolc/solubility/models/moore"
	"github.com/openvolc/solubility/models/shishkina"
)

// Config selects per-model options that the plain registry defaults.
// The zero value reproduces the registry defaults.
type Config struct {
	// Fugacity selects the fugacity model per species: "ideal" (the
	// default) or "mrk".
	Fugacity struct {
		H2O string `toml:"h2o"`
		CO2 string `toml:"co2"`
	} `toml:"fugacity"`

	// Allison selects the calibration location and fit form of the
	// Allison et al. (2019) carbon law.
	Allison struct {
		Location string `toml:"location"` // default "sunset"
		Form     string `toml:"form"`     // "thermodynamic" (default) or "power"
	} `toml:"allison"`

	// IaconoMarziano selects the coefficient set of the
	// Iacono-Marziano et al. (2012) laws: "hydrous" (the default) or
	// "anhydrous".
	IaconoMarziano struct {
		Coefficients string `toml:"coefficients"`
	} `toml:"iaconomarziano"`
}

// LoadConfig reads a model configuration from the TOML file at path.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("models: reading configuration %s: %v", path, err)
	}
	return &c, nil
}

// fugacity builds the configured fugacity model for one species. An
// empty name keeps the law's own default (nil).
func (c *Config) fugacity(name string, s solubility.Species) (solubility.FugacityModel, error) {
	switch name {
	case "", "ideal":
		return nil, nil
	case "mrk":
		return solubility.NewMRK(s), nil
	}
	return nil, fmt.Errorf("models: invalid fugacity model %q; valid options are ideal, mrk", name)
}

// Get returns a fresh instance of the named law with this
// configuration's options applied.
func (c *Config) Get(name string) (solubility.SolubilityLaw, error) {
	fCO2, err := c.fugacity(c.Fugacity.CO2, solubility.CO2)
	if err != nil {
		return nil, err
	}
	fH2O, err := c.fugacity(c.Fugacity.H2O, solubility.H2O)
	if err != nil {
		return nil, err
	}

	switch name {
	case "allison-carbon":
		loc := c.Allison.Location
		if loc == "" {
			loc = "sunset"
		}
		var form allison.Form
		switch c.Allison.Form {
		case "", "thermodynamic":
			form = allison.Thermodynamic
		case "power":
			form = allison.Power
		default:
			return nil, fmt.Errorf("models: invalid allison form %q; valid options are thermodynamic, power", c.Allison.Form)
		}
		return allison.NewCarbon(loc, form, fCO2)
	case "iaconomarziano-carbon", "iaconomarziano-water":
		switch c.IaconoMarziano.Coefficients {
		case "", "hydrous":
			if name == "iaconomarziano-carbon" {
				return iaconomarziano.NewCarbon(iaconomarziano.HydrousCarbon), nil
			}
			return iaconomarziano.NewWater(iaconomarziano.HydrousWater), nil
		case "anhydrous":
			if name == "iaconomarziano-carbon" {
				return iaconomarziano.NewCarbon(iaconomarziano.AnhydrousCarbon), nil
			}
			return iaconomarziano.NewWater(iaconomarziano.AnhydrousWater), nil
		}
		return nil, fmt.Errorf("models: invalid iaconomarziano coefficients %q; valid options are hydrous, anhydrous", c.IaconoMarziano.Coefficients)
	}

	switch name {
	case "shishkina-carbon":
		return shishkina.NewCarbon(fCO2), nil
	case "shishkina-water":
		return shishkina.NewWater(fH2O), nil
	case "dixon-carbon":
		return dixon.NewCarbon(fCO2), nil
	case "dixon-water":
		return dixon.NewWater(fH2O), nil
	case "moore-water":
		return moore.NewWater(fH2O), nil
	}
	// Laws without a fugacity sub-model come straight from the
	// registry.
	return Get(name)
}

// GetMixed returns a configured mixed-fluid coordinator for the named
// family.
func (c *Config) GetMixed(name string) (*solubility.MixedFluid, error) {
	pair, ok := mixed[name]
	if !ok {
		return nil, fmt.Errorf("models: invalid mixed model %q", name)
	}
	co2, err := c.Get(pair[0])
	if err != nil {
		return nil, err
	}
	h2o, err := c.Get(pair[1])
	if err != nil {
		return nil, err
	}
	return solubility.NewMixedFluid(co2, h2o)
}
