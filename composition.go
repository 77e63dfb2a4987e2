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

// Oxides is the fixed vocabulary of major-element oxides, including the
// two volatile species H2O and CO2.
var Oxides = []string{
	"SiO2", "TiO2", "Al2O3", "Fe2O3", "Cr2O3", "FeO", "MnO", "MgO",
	"NiO", "CoO", "CaO", "Na2O", "K2O", "P2O5", "H2O", "CO2",
}

// Molar masses and cation properties of the oxides.
var (
	// OxideMass is the molar mass of each oxide [g/mol].
	OxideMass = map[string]float64{
		"SiO2": 28.085 + 32, "MgO": 24.305 + 16, "FeO": 55.845 + 16,
		"CaO": 40.078 + 16, "Al2O3": 2*26.982 + 16*3, "Na2O": 22.99*2 + 16,
		"K2O": 39.098*2 + 16, "MnO": 54.938 + 16, "TiO2": 47.867 + 32,
		"P2O5": 2*30.974 + 5*16, "Cr2O3": 51.996*2 + 3*16,
		"NiO": 58.693 + 16, "CoO": 28.01 + 16, "Fe2O3": 55.845*2 + 16*3,
		"H2O": 18.02, "CO2": 44.01,
	}

	// CationNum is the number of cations per formula unit of each oxide.
	CationNum = map[string]int{
		"SiO2": 1, "MgO": 1, "FeO": 1, "CaO": 1, "Al2O3": 2, "Na2O": 2,
		"K2O": 2, "MnO": 1, "TiO2": 1, "P2O5": 2, "Cr2O3": 2,
		"NiO": 1, "CoO": 1, "Fe2O3": 2, "H2O": 2, "CO2": 1,
	}

	// OxygenNum is the number of oxygens per formula unit of each oxide.
	OxygenNum = map[string]int{
		"SiO2": 2, "MgO": 1, "FeO": 1, "CaO": 1, "Al2O3": 3, "Na2O": 1,
		"K2O": 1, "MnO": 1, "TiO2": 2, "P2O5": 5, "Cr2O3": 3,
		"NiO": 1, "CoO": 1, "Fe2O3": 3, "H2O": 1, "CO2": 2,
	}

	// CationCharge is the charge of the cation in each oxide.
	CationCharge = map[string]int{
		"SiO2": 4, "MgO": 2, "FeO": 2, "CaO": 2, "Al2O3": 3, "Na2O": 1,
		"K2O": 1, "MnO": 2, "TiO2": 4, "P2O5": 5, "Cr2O3": 3,
		"NiO": 2, "CoO": 2, "Fe2O3": 3, "H2O": 1, "CO2": 4,
	}

	// CationMass is the molar mass of the cation in each oxide [g/mol].
	CationMass = map[string]float64{
		"SiO2": 28.085, "MgO": 24.305, "FeO": 55.845, "CaO": 40.078,
		"Al2O3": 26.982, "Na2O": 22.990, "K2O": 39.098, "MnO": 54.938,
		"TiO2": 47.867, "P2O5": 30.974, "Cr2O3": 51.996, "NiO": 58.693,
		"CoO": 28.01, "Fe2O3": 55.845, "H2O": 2, "CO2": 12.01,
	}

	// CationName is the element symbol of the cation in each oxide.
	CationName = map[string]string{
		"SiO2": "Si", "MgO": "Mg", "FeO": "Fe", "CaO": "Ca",
		"Al2O3": "Al", "Na2O": "Na", "K2O": "K", "MnO": "Mn",
		"TiO2": "Ti", "P2O5": "P", "Cr2O3": "Cr", "NiO": "Ni",
		"CoO": "Co", "Fe2O3": "Fe3", "H2O": "H", "CO2": "C",
	}
)

// A Composition holds the major-element oxide composition of a silicate
// melt in weight percent. All oxides in the Oxides vocabulary are always
// present; missing inputs default to zero. Compositions have value
// semantics: every transformation returns a new Composition and no
// operation in this package mutates a caller's Composition.
type Composition map[string]float64

// NewComposition builds a Composition from oxide weight percents.
// Unrecognized oxide names and negative values are rejected with an
// InputError; oxides absent from w default to zero.
func NewComposition(w map[string]float64) (Composition, error) {
	c := make(Composition, len(Oxides))
	for _, ox := range Oxides {
		c[ox] = 0
	}
	for ox, v := range w {
		if _, ok := c[ox]; !ok {
			return nil, &InputError{Message: fmt.Sprintf("unrecognized oxide %q", ox)}
		}
		if v < 0 {
			return nil, &InputError{Message: fmt.Sprintf("negative weight percent %g for oxide %s", v, ox)}
		}
		c[ox] = v
	}
	return c, nil
}

// Clone returns a copy of c.
func (c Composition) Clone() Composition {
	o := make(Composition, len(c))
	for ox, v := range c {
		o[ox] = v
	}
	return o
}

// Get returns the weight percent of oxide ox, or zero if it is absent.
func (c Composition) Get(ox string) float64 { return c[ox] }

// Sum returns the total weight percent of all oxides.
func (c Composition) Sum() float64 {
	var s float64
	for _, ox := range Oxides {
		s += c[ox]
	}
	return s
}

// Normalize rescales all oxides, volatiles included, so that they sum to
// 100. Normalize is idempotent.
func (c Composition) Normalize() Composition {
	o := c.Clone()
	s := c.Sum()
	if s == 0 {
		return o
	}
	for ox := range o {
		o[ox] *= 100 / s
	}
	return o
}

// NormalizeFixedVolatiles rescales the non-volatile oxides so that the
// whole composition sums to 100 while H2O and CO2 keep their input
// values.
func (c Composition) NormalizeFixedVolatiles() Composition {
	o := c.Clone()
	vol := c["H2O"] + c["CO2"]
	anh := c.Sum() - vol
	if anh == 0 {
		return o
	}
	for _, ox := range Oxides {
		if ox == "H2O" || ox == "CO2" {
			continue
		}
		o[ox] = c[ox] * (100 - vol) / anh
	}
	return o
}

// NormalizeAdditionalVolatiles rescales the non-volatile oxides to sum
// to 100 on their own, carrying the volatiles through unchanged on top
// of that total.
func (c Composition) NormalizeAdditionalVolatiles() Composition {
	o := c.Clone()
	anh := c.Sum() - c["H2O"] - c["CO2"]
	if anh == 0 {
		return o
	}
	for _, ox := range Oxides {
		if ox == "H2O" || ox == "CO2" {
			continue
		}
		o[ox] = c[ox] * 100 / anh
	}
	return o
}

// Anhydrous strips the volatiles and renormalizes the remaining oxides
// to 100.
func (c Composition) Anhydrous() Composition {
	o := c.Clone()
	o["H2O"] = 0
	o["CO2"] = 0
	return o.Normalize()
}

// MolOxides returns the mole fractions of the oxides.
func (c Composition) MolOxides() map[string]float64 {
	mol := make(map[string]float64, len(Oxides))
	var total float64
	for _, ox := range Oxides {
		n := c[ox] / OxideMass[ox]
		mol[ox] = n
		total += n
	}
	if total == 0 {
		return mol
	}
	for ox := range mol {
		mol[ox] /= total
	}
	return mol
}

// MolCations returns the mole fractions of the cations, keyed by element
// symbol (ferric iron as "Fe3").
func (c Composition) MolCations() map[string]float64 {
	mol := make(map[string]float64, len(Oxides))
	var total float64
	for _, ox := range Oxides {
		n := c[ox] / OxideMass[ox] * float64(CationNum[ox])
		mol[CationName[ox]] += n
		total += n
	}
	if total == 0 {
		return mol
	}
	for el := range mol {
		mol[el] /= total
	}
	return mol
}

// MolSingleOxygen returns the cation proportions of the composition on a
// single-oxygen basis, keyed by element symbol.
func (c Composition) MolSingleOxygen() map[string]float64 {
	mol := make(map[string]float64, len(Oxides))
	var oxygens float64
	for _, ox := range Oxides {
		n := c[ox] / OxideMass[ox]
		mol[CationName[ox]] += n * float64(CationNum[ox])
		oxygens += n * float64(OxygenNum[ox])
	}
	if oxygens == 0 {
		return mol
	}
	for el := range mol {
		mol[el] /= oxygens
	}
	return mol
}

// MeanMolarMassAnhydrous returns the mean molar mass [g/mol] of the
// volatile-free melt.
func (c Composition) MeanMolarMassAnhydrous() float64 {
	anh := c.Anhydrous()
	mol := anh.MolOxides()
	var m float64
	for _, ox := range Oxides {
		m += mol[ox] * OxideMass[ox]
	}
	return m
}

// MolPercentToWt converts a composition given in mole percent (or mole
// fraction) of oxides to weight percent.
func MolPercentToWt(mol map[string]float64) (Composition, error) {
	c, err := NewComposition(mol)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, ox := range Oxides {
		c[ox] *= OxideMass[ox]
		total += c[ox]
	}
	if total == 0 {
		return c, nil
	}
	for ox := range c {
		c[ox] *= 100 / total
	}
	return c, nil
}
