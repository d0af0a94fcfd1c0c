package dice

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource is the single entropy source every roll is drawn from.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (Monte Carlo harness, tests)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// fixedRNG replays a scripted list of d100 results, then repeats the last one.
type fixedRNG struct {
	rolls []int
	next  int
}

// Fixed returns a source whose successive Roll calls yield exactly rolls.
// Values outside [1,100] are clamped.
func Fixed(rolls ...int) RandomSource {
	if len(rolls) == 0 {
		rolls = []int{50}
	}
	return &fixedRNG{rolls: append([]int(nil), rolls...)}
}

func (f *fixedRNG) Float64() float64 {
	r := f.rolls[len(f.rolls)-1]
	if f.next < len(f.rolls) {
		r = f.rolls[f.next]
		f.next++
	}
	r = clampRoll(r)
	// centre of the bucket so Roll maps it back to r
	return (float64(r) - 0.5) / 100
}
