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

// Package solubility models the solubility of H2O and CO2 in silicate
// melts. It provides published empirical and semi-empirical solubility
// laws for single volatile species, fugacity and activity sub-models that
// the laws compose, a coordinator for mixed H2O–CO2 vapor–melt
// equilibrium, and an integrator for open- and closed-system degassing
// paths.
//
// References:
//
//	Allison CM, Roggensack K and Clarke AB (2019) H2O–CO2 solubility in
//	alkali-rich mafic magmas: new experiments at mid-crustal pressures.
//	Contributions to Mineralogy and Petrology 174:58.
//
//	Dixon JE (1997) Degassing of alkalic basalts. American Mineralogist
//	82:368-378.
//
//	Iacono-Marziano G, Morizet Y, Le Trong E and Gaillard F (2012) New
//	experimental data and semi-empirical parameterization of H2O-CO2
//	solubility in mafic melts. Geochimica et Cosmochimica Acta 97:1-23.
//
//	Kerrick DM and Jacobs GK (1981) A modified Redlich-Kwong equation
//	for H2O, CO2, and H2O-CO2 mixtures at elevated pressures and
//	temperatures. American Journal of Science 281:735-767.
//
//	Liu Y, Zhang Y and Behrens H (2005) Solubility of H2O in rhyolitic
//	melts at low pressures and a new empirical model for mixed H2O-CO2
//	solubility in rhyolitic melts. Journal of Volcanology and Geothermal
//	Research 143:219-235.
//
//	Moore G, Vennemann T and Carmichael ISE (1998) An empirical model
//	for the solubility of H2O in magmas to 3 kilobars. American
//	Mineralogist 83:36-42.
//
//	Shishkina TA, Botcharnikov RE, Holtz F, Almeev RR, Jazwa AM and
//	Jakubiak AA (2014) Compositional and pressure effects on the
//	solubility of H2O and CO2 in mafic melts. Chemical Geology 388:112-129.
package solubility
