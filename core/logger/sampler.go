package logger

import (
	"hash/fnv"
	"sync/atomic"
)

// ratioSampler admits roughly ratio of the keys passed to Allow. A ratio of 1
// admits everything, 0 admits nothing. Decisions are stable per key so a chat
// that is sampled stays sampled.
type ratioSampler struct {
	permille atomic.Int64
}

func newRatioSampler(ratio float64) *ratioSampler {
	s := &ratioSampler{}
	s.SetRatio(ratio)
	return s
}

// SetRatio updates the admission ratio. Values are clamped to [0, 1].
func (s *ratioSampler) SetRatio(ratio float64) {
	switch {
	case ratio <= 0:
		s.permille.Store(0)
	case ratio >= 1:
		s.permille.Store(1000)
	default:
		s.permille.Store(int64(ratio * 1000))
	}
}

// Allow reports whether the given key falls inside the sampled fraction.
func (s *ratioSampler) Allow(key string) bool {
	p := s.permille.Load()
	if p >= 1000 {
		return true
	}
	if p <= 0 {
		return false
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum32()%1000) < p
}
