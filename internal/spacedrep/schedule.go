package spacedrep

// SM-2 bounds and seeds.
const (
	// InitialEase is the ease factor of a freshly created card.
	InitialEase = 2.5

	MinEase = 1.3
	MaxEase = 3.0

	// MinIntervalDays and MaxIntervalDays bound the interval of a scheduled card.
	MinIntervalDays = 1
	MaxIntervalDays = 365

	// SecondIntervalDays is the interval after the second consecutive pass.
	SecondIntervalDays = 6

	// DefaultDueLimit is the due queue size used when the caller has no preference.
	DefaultDueLimit = 10
)
