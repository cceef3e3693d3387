package quantity

// ergPerTeV: 1 TeV = 1e12 eV, 1 eV = 1.602176634e-12 erg.
const ergPerTeV = 1.602176634

// Energy is a photon energy.  The stored value is in TeV.
type Energy float64

func TeV(v float64) Energy { return Energy(v) }
func GeV(v float64) Energy { return Energy(v * 1e-3) }
func MeV(v float64) Energy { return Energy(v * 1e-6) }

// EnergyFrom builds an Energy from a value in any energy unit.
func EnergyFrom(v float64, u string) (Energy, error) {
	t, err := Convert(v, u, "TeV")
	if err != nil {
		return 0, err
	}
	return Energy(t), nil
}

func (e Energy) TeV() float64 { return float64(e) }
func (e Energy) GeV() float64 { return float64(e) * 1e3 }
func (e Energy) MeV() float64 { return float64(e) * 1e6 }
func (e Energy) Erg() float64 { return float64(e) * ergPerTeV }

// In returns the energy value in the named unit.
func (e Energy) In(u string) (float64, error) {
	return Convert(float64(e), "TeV", u)
}
