package services

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedRand replays ints and floats. Once a script runs out IntN returns
// n-1, which leaves a Fisher-Yates shuffle as the identity, and Float64
// returns 0.5, which means no jitter.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return n - 1
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// manualTimer holds the settle callback until the test fires it
type manualTimer struct {
	mu      sync.Mutex
	pending func()
	last    time.Duration
}

func (m *manualTimer) schedule(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = f
	m.last = d
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		was := m.pending != nil
		m.pending = nil
		return was
	}
}

func (m *manualTimer) fire() bool {
	m.mu.Lock()
	f := m.pending
	m.pending = nil
	m.mu.Unlock()
	if f == nil {
		return false
	}
	f()
	return true
}

// recordingSpeaker remembers what was spoken
type recordingSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (s *recordingSpeaker) Speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
}

func (s *recordingSpeaker) SpeakAccent(text, accent string) {
	s.Speak(text)
}

func (s *recordingSpeaker) said() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

func makeEntries(n int) []models.Entry {
	entries := make([]models.Entry, n)
	for i := range entries {
		w := fmt.Sprintf("word%02d", i)
		entries[i] = models.Entry{
			Key:      w,
			Word:     w,
			POS:      "n.",
			Meaning:  fmt.Sprintf("meaning %d", i),
			Sentence: fmt.Sprintf("sentence with %s", w),
		}
	}
	return entries
}
