package rules

import (
	"os"
	"strconv"
)

// Settings holds the named lending thresholds. Values are read once at
// startup; every rule takes them as an argument rather than reaching for
// globals, so tests can substitute fixed values.
type Settings struct {
	Domenii   int // max explicit domains per book
	NMC       int // max loans within PerDays
	PerDays   int // window (days) for NMC
	C         int // max books per single loan request
	D         int // max loans from one domain within LMonths
	LMonths   int // window (months) for D
	Lim       int // max cumulative extension days in the trailing 3 months
	DeltaDays int // min days before re-borrowing the same book
	NCZ       int // max loans per day, regular readers
	Persimp   int // max loans per day, staff
}

// DefaultSettings returns the documented fallback thresholds.
func DefaultSettings() Settings {
	return Settings{
		Domenii:   3,
		NMC:       5,
		PerDays:   30,
		C:         3,
		D:         2,
		LMonths:   12,
		Lim:       30,
		DeltaDays: 14,
		NCZ:       2,
		Persimp:   10,
	}
}

// SettingsFromEnv reads LIB_* overrides from the environment, falling back
// to the defaults for anything unset or unparsable.
func SettingsFromEnv() Settings {
	s := DefaultSettings()
	intEnv := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*dst = n
			}
		}
	}
	intEnv("LIB_DOMENII", &s.Domenii)
	intEnv("LIB_NMC", &s.NMC)
	intEnv("LIB_PER", &s.PerDays)
	intEnv("LIB_C", &s.C)
	intEnv("LIB_D", &s.D)
	intEnv("LIB_L", &s.LMonths)
	intEnv("LIB_LIM", &s.Lim)
	intEnv("LIB_DELTA", &s.DeltaDays)
	intEnv("LIB_NCZ", &s.NCZ)
	intEnv("LIB_PERSIMP", &s.Persimp)
	return s
}

// Effective is the threshold set after applying the staff multipliers:
// for staff the NMC and LIM caps double, the PER and DELTA windows halve
// (integer truncation), and the daily cap switches from NCZ to PERSIMP.
type Effective struct {
	NMC           int
	PerDays       int
	DailyCap      int
	DeltaDays     int
	Lim           int
	MaxPerRequest int
}

// ForReader derives the effective thresholds for one reader.
func (s Settings) ForReader(isStaff bool) Effective {
	eff := Effective{
		NMC:           s.NMC,
		PerDays:       s.PerDays,
		DailyCap:      s.NCZ,
		DeltaDays:     s.DeltaDays,
		Lim:           s.Lim,
		MaxPerRequest: s.C,
	}
	if isStaff {
		eff.NMC = s.NMC * 2
		eff.PerDays = s.PerDays / 2
		eff.DailyCap = s.Persimp
		eff.DeltaDays = s.DeltaDays / 2
		eff.Lim = s.Lim * 2
	}
	return eff
}
