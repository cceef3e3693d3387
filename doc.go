/*
Package gammapy is a data-analysis toolkit for gamma-ray astronomy.

The module is a flat collection of small library packages plus one
command:

  table     column-oriented tables with units and ECSV text I/O
  quantity  unit conversion for the unit vocabulary the tables use
  energy    logarithmic energy binning
  sky       celestial positions, frames and circular sky regions
  gadf      header conventions of the gamma-ray astronomy data formats
  data      observation tables: selection, GTIs, format checking
  modeling  fit parameters and the adapter onto the gonum minimizer
  modeling/models
            spectral and spatial source models
  catalog   source catalogs: Fermi-LAT, HESS, HAWC, gamma-cat, SNRs
  cmd/gamma command line front end

Reference catalog data is not bundled.  Loaders resolve data files as
ECSV tables under the directory named by the GAMMAPY_DATA environment
variable; tests that need reference data skip when it is unset.
*/
package gammapy
