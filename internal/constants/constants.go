package constants

const NeutronMassMeV float64 = 939.56542194  // [MeV/c^2]
const AmuMeV float64 = 931.49410372          // [MeV/c^2]
const KBoltzmannMeV float64 = 8.617333262e-11 // [MeV/K]

// MaxFissionEnergy bounds sampled fission-daughter energies; evaluated
// spectra are not trusted above it.
const MaxFissionEnergy float64 = 20.0 // [MeV]

// EnergyFloor is the kill threshold guarding against floating underflow
// in cross-section lookups.
const EnergyFloor float64 = 1e-100 // [MeV]

const Quantile95 = 1.96
