package pattern

import "math"

// timeSeed derives a deterministic 64-bit seed from an exact rational time,
// so that identical query times always produce identical pseudo-random
// values (§4.C "Randomness is a pure function of time"), never of
// wall-clock, and identical replays produce identical streams (§8).
// The rational numerator/denominator are mixed with a SplitMix64-style
// finalizer to avoid the low-order-bit correlation a naive hash would have
// for closely spaced rationals.
func timeSeed(t Time) uint64 {
	r := t.Rat()
	num := r.Num()
	den := r.Denom()
	h := uint64(1469598103934665603) // FNV offset basis
	mix := func(h uint64, x uint64) uint64 {
		h ^= x
		h *= 1099511628211
		return h
	}
	for _, w := range num.Bits() {
		h = mix(h, uint64(w))
	}
	h = mix(h, uint64(num.Sign()+2))
	for _, w := range den.Bits() {
		h = mix(h, uint64(w))
	}
	return splitmix64(h)
}

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x = x ^ (x >> 31)
	return x
}

// randFloat64 returns a deterministic pseudo-random value in [0,1) for t.
func randFloat64(t Time) float64 {
	h := timeSeed(t)
	// Use the top 53 bits for a uniform double in [0,1).
	return float64(h>>11) / float64(1<<53)
}

// Rand is a continuous signal yielding a deterministic pseudo-random
// float64 in [0,1) for each query, seeded by the query's midpoint time.
func Rand() Pattern[float64] {
	return Signal(randFloat64)
}

// Perlin is a continuous 1-D Perlin-noise signal over cycle time, yielding
// values in roughly [-1,1], deterministic per query time.
func Perlin() Pattern[float64] {
	return Signal(func(t Time) float64 {
		x := t.Float64()
		i0 := math.Floor(x)
		i1 := i0 + 1
		fade := func(f float64) float64 { return f * f * f * (f*(f*6-15) + 10) }
		grad := func(i float64) float64 {
			h := randFloat64(TimeFromFloatApprox(i))
			return h*2 - 1
		}
		t0 := x - i0
		g0, g1 := grad(i0), grad(i1)
		return lerp(g0*t0, g1*(t0-1), fade(t0))
	})
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

// Sine/Cosine/Saw/Triangle are the standard continuous waveform signals,
// one period per cycle, producing values in [0,1].
func Sine() Pattern[float64] {
	return Signal(func(t Time) float64 {
		return (math.Sin(2*math.Pi*t.Float64()) + 1) / 2
	})
}

func Cosine() Pattern[float64] {
	return Signal(func(t Time) float64 {
		return (math.Cos(2*math.Pi*t.Float64()) + 1) / 2
	})
}

func Saw() Pattern[float64] {
	return Signal(func(t Time) float64 {
		return t.CyclePos().Float64()
	})
}

func Triangle() Pattern[float64] {
	return Signal(func(t Time) float64 {
		p := t.CyclePos().Float64()
		if p < 0.5 {
			return p * 2
		}
		return 2 - p*2
	})
}

func Isaw() Pattern[float64] {
	return Signal(func(t Time) float64 { return 1 - t.CyclePos().Float64() })
}

func Square() Pattern[float64] {
	return Signal(func(t Time) float64 {
		if t.CyclePos().Float64() < 0.5 {
			return 0
		}
		return 1
	})
}
