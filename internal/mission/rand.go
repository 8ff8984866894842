package mission

// Rand is a mulberry32 generator. Its output sequence is part of the mission
// contract: the same seed yields the same picks in every implementation.
//
// Each step advances the 32-bit state by 0x6D2B79F5, then mixes:
//
//	t = a
//	t = (t ^ t>>15) * (t | 1)
//	t ^= t + (t ^ t>>7) * (t | 61)
//	out = t ^ t>>14
//
// with all arithmetic modulo 2^32.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with seed. Only the low 32 bits are used.
func NewRand(seed int) *Rand {
	return &Rand{state: uint32(seed)}
}

// Uint32 returns the next raw output.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 returns the next output scaled to [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / (1 << 32)
}

// Intn returns a value in [0, n). It equals floor(Float64() * n) exactly.
// n must be positive.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("mission: Intn called with non-positive n")
	}
	return int((uint64(r.Uint32()) * uint64(n)) >> 32)
}
