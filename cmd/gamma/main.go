// Gamma is a command line tool for working with gamma-ray source
// catalogs and observation index tables.
//
// Usage:
//
//	gamma catalog list
//	gamma catalog info <tag>
//	gamma catalog get <tag> <source>
//	gamma obs select <obs.ecsv> -s selection.yaml
//	gamma obs check <obs.ecsv>
//	gamma ebounds --emin 0.1 --emax 100 --bins 10
//
// Catalog commands read the reference datasets from the directory
// named by the GAMMAPY_DATA environment variable.
package main

import (
	"github.com/soniakeys/exit"
)

func main() {
	defer exit.Handler()
	if err := rootCmd().Execute(); err != nil {
		exit.Log(err)
	}
}
