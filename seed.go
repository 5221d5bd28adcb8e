package veil

// seedHash derives a signed 32-bit seed from a key string using the
// classic shift-multiply accumulator: h = h<<5 - h + c, wrapping with
// two's-complement overflow. Two equal keys always derive equal seeds.
func seedHash(key string) int32 {
	var h int32
	for _, b := range []byte(key) {
		h = h<<5 - h + int32(b)
	}
	return h
}

// lcg is a linear congruential generator over the state recurrence
// S = (S*9301 + 49297) mod 233280, drawing values in [0, 1).
// It is a pure function of its running state: two generators seeded
// identically produce identical draw sequences.
type lcg struct {
	state int64
}

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

func newLCG(seed int32) *lcg {
	return &lcg{state: int64(seed)}
}

// Next advances the state and returns a draw in [0, 1).
// Negative seeds are normalized into the modulus range after each step so
// draws never go negative.
func (g *lcg) Next() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	if g.state < 0 {
		g.state += lcgModulus
	}
	return float64(g.state) / lcgModulus
}

// permute returns a permutation map over [0, n) driven by draws from g:
// perm[originalIndex] = shuffledIndex. The shuffle is a seeded
// Fisher-Yates, one draw per position; uniformity is not a contract,
// determinism per seed is.
func permute(g *lcg, n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(g.Next() * float64(i+1))
		order[i], order[j] = order[j], order[i]
	}

	// order[si] is the original index landing at shuffled slot si.
	perm := make([]int, n)
	for si, oi := range order {
		perm[oi] = si
	}
	return perm
}
