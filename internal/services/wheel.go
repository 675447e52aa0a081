package services

import (
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

var (
	// ErrEmptyPool is returned by Refresh when every word is mastered or the
	// vocabulary is empty
	ErrEmptyPool = errors.New("no unmastered words for the wheel")
	// ErrNoRound is returned when the wheel has no pool to spin
	ErrNoRound = errors.New("wheel has no round")
	// ErrSpinning is returned while a spin is settling
	ErrSpinning = errors.New("wheel is already spinning")
	// ErrRoundComplete is returned by Spin once every pool word is eliminated
	ErrRoundComplete = errors.New("round complete, refresh for a new batch")
	// ErrNoCard is returned by card actions when no flashcard is shown
	ErrNoCard = errors.New("no flashcard is shown")
	// ErrUnknownMode is returned by SetMode for values outside WheelMode
	ErrUnknownMode = errors.New("unknown wheel mode")
)

// WheelConfig holds the wheel's tunables
type WheelConfig struct {
	MaxPool        int
	CompactPool    int
	Settle         time.Duration
	MinTurns       int
	JitterFraction float64
	PointerAngle   float64
	LabelRunes     int
}

// DefaultWheelConfig returns the classic wheel: 50 words (24 on small
// screens), a 3.3 second settle and at least five full turns per spin.
func DefaultWheelConfig() WheelConfig {
	return WheelConfig{
		MaxPool:        50,
		CompactPool:    24,
		Settle:         3300 * time.Millisecond,
		MinTurns:       5,
		JitterFraction: 0.7,
		PointerAngle:   270,
		LabelRunes:     10,
	}
}

// Random is the randomness the wheel draws from. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
	Float64() float64
}

// Scheduler runs f once after d. The returned stop func cancels it.
type Scheduler func(d time.Duration, f func()) (stop func() bool)

// AfterFunc schedules with the real clock
func AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Speaker reads text aloud. Requests are fire-and-forget.
type Speaker interface {
	Speak(text string)
}

// PoolSource yields the words eligible for a new round
type PoolSource interface {
	Unmastered() []models.Entry
}

// PoolSourceFunc adapts a function to PoolSource
type PoolSourceFunc func() []models.Entry

func (f PoolSourceFunc) Unmastered() []models.Entry { return f() }

type flashcard struct {
	index    int
	mode     models.WheelMode
	revealed bool
}

// WheelGame is the elimination game. Spin moves Idle or CardShown to
// Spinning; a one-shot settle timer moves Spinning to CardShown; Resolve
// moves CardShown back to Idle. Remembered cards are eliminated for the
// current round only.
type WheelGame struct {
	mu      sync.Mutex
	cfg     WheelConfig
	source  PoolSource
	rng     Random
	after   Scheduler
	speaker Speaker
	log     *slog.Logger

	open       bool
	roundID    string
	pool       []models.Entry
	eliminated map[int]struct{}
	mode       models.WheelMode
	phase      models.WheelPhase
	rotation   float64
	card       *flashcard
	pending    int
	spinSeq    uint64
	stopSettle func() bool
	version    uint64
}

// WheelOption customises a WheelGame
type WheelOption func(*WheelGame)

// WithRandom replaces the random source
func WithRandom(r Random) WheelOption {
	return func(g *WheelGame) { g.rng = r }
}

// WithScheduler replaces the settle timer
func WithScheduler(s Scheduler) WheelOption {
	return func(g *WheelGame) { g.after = s }
}

// NewWheelGame creates a closed wheel without a round
func NewWheelGame(cfg WheelConfig, source PoolSource, speaker Speaker, log *slog.Logger, opts ...WheelOption) *WheelGame {
	g := &WheelGame{
		cfg:        cfg,
		source:     source,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		after:      AfterFunc,
		speaker:    speaker,
		log:        log.With("component", "wheel"),
		eliminated: make(map[int]struct{}),
		mode:       models.ModeWordToMeaning,
		phase:      models.PhaseIdle,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Open shows the wheel, starting a round if there is none
func (g *WheelGame) Open(compact bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.open = true
	if len(g.pool) > 0 {
		return nil
	}
	return g.refreshLocked(compact)
}

// Close hides the wheel and discards the card and any pending settle. The
// round is kept for the next Open.
func (g *WheelGame) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.open = false
	g.cancelSettleLocked()
	g.card = nil
	g.phase = models.PhaseIdle
	g.version++
}

// Refresh draws a new round from the unmastered words
func (g *WheelGame) Refresh(compact bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refreshLocked(compact)
}

func (g *WheelGame) refreshLocked(compact bool) error {
	g.cancelSettleLocked()
	g.card = nil
	g.phase = models.PhaseIdle
	g.eliminated = make(map[int]struct{})
	g.rotation = 0
	g.version++

	work := slices.Clone(g.source.Unmastered())
	if len(work) == 0 {
		g.pool = nil
		g.roundID = ""
		g.open = false
		return ErrEmptyPool
	}

	shuffle(work, g.rng)

	limit := g.cfg.MaxPool
	if compact {
		limit = g.cfg.CompactPool
	}
	if limit > 0 && len(work) > limit {
		work = work[:limit]
	}

	g.pool = work
	g.roundID = uuid.NewString()
	g.log.Debug("new round", "round_id", g.roundID, "pool", len(work), "compact", compact)
	return nil
}

// shuffle is an in-place Fisher-Yates shuffle
func shuffle(entries []models.Entry, rng Random) {
	for i := len(entries) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}
}

// SetMode switches the question side. It reports whether anything changed;
// the pool is not reshuffled.
func (g *WheelGame) SetMode(mode models.WheelMode) (bool, error) {
	if mode != models.ModeWordToMeaning && mode != models.ModeMeaningToWord {
		return false, ErrUnknownMode
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.mode == mode {
		return false, nil
	}
	g.mode = mode
	g.version++
	return true, nil
}

// Spin picks a random uneliminated sector and starts the settle timer. A
// card still on screen is discarded unresolved.
func (g *WheelGame) Spin() (models.SpinResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.phase == models.PhaseSpinning:
		return models.SpinResult{}, ErrSpinning
	case len(g.pool) == 0:
		return models.SpinResult{}, ErrNoRound
	case g.completeLocked():
		return models.SpinResult{}, ErrRoundComplete
	}

	g.card = nil
	idx := g.drawLocked()
	g.pending = idx
	g.phase = models.PhaseSpinning
	g.rotation = g.targetRotation(idx)
	g.spinSeq++
	g.version++

	seq := g.spinSeq
	g.stopSettle = g.after(g.cfg.Settle, func() { g.settle(seq) })

	return models.SpinResult{
		RoundID:  g.roundID,
		Index:    idx,
		Rotation: g.rotation,
		SettleMS: g.cfg.Settle.Milliseconds(),
	}, nil
}

// drawLocked picks an index outside eliminated. While most of the pool is
// still active it redraws on a hit; after that it draws from the active
// indices directly so late-round spins stay O(1) in expectation.
func (g *WheelGame) drawLocked() int {
	n := len(g.pool)
	if len(g.eliminated)*2 < n {
		for {
			i := g.rng.IntN(n)
			if _, gone := g.eliminated[i]; !gone {
				return i
			}
		}
	}

	active := make([]int, 0, n-len(g.eliminated))
	for i := range n {
		if _, gone := g.eliminated[i]; !gone {
			active = append(active, i)
		}
	}
	return active[g.rng.IntN(len(active))]
}

// targetRotation is measured from the unrotated wheel: it brings the centre
// of sector idx under the pointer, adds MinTurns full turns and a jitter
// within JitterFraction of a sector.
func (g *WheelGame) targetRotation(idx int) float64 {
	arc := 360 / float64(len(g.pool))
	center := float64(idx)*arc + arc/2

	base := math.Mod(g.cfg.PointerAngle-center, 360)
	if base < 0 {
		base += 360
	}
	jitter := (g.rng.Float64() - 0.5) * arc * g.cfg.JitterFraction

	return base + 360*float64(g.cfg.MinTurns) + jitter
}

func (g *WheelGame) settle(seq uint64) {
	g.mu.Lock()
	if seq != g.spinSeq || g.phase != models.PhaseSpinning {
		g.mu.Unlock()
		return
	}
	g.phase = models.PhaseCardShown
	g.stopSettle = nil
	g.card = &flashcard{index: g.pending, mode: g.mode}
	g.version++

	word := g.pool[g.pending].Word
	speak := g.mode == models.ModeWordToMeaning
	g.mu.Unlock()

	if speak {
		g.say(word)
	}
}

// Reveal uncovers the answer. In meaning-to-word mode the word is read out
// to confirm pronunciation.
func (g *WheelGame) Reveal() (models.Flashcard, error) {
	g.mu.Lock()
	if g.phase != models.PhaseCardShown || g.card == nil {
		g.mu.Unlock()
		return models.Flashcard{}, ErrNoCard
	}
	g.card.revealed = true
	g.version++

	view := g.cardViewLocked()
	speak := g.card.mode == models.ModeMeaningToWord
	g.mu.Unlock()

	if speak {
		g.say(view.Entry.Word)
	}
	return view, nil
}

// Resolve records the learner's verdict and returns to Idle. Remembered
// eliminates the card's sector for this round; mastery is not touched. The
// result reports whether the round is now complete.
func (g *WheelGame) Resolve(outcome models.Outcome) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != models.PhaseCardShown || g.card == nil {
		return false, ErrNoCard
	}

	if outcome == models.OutcomeRemembered {
		g.eliminated[g.card.index] = struct{}{}
	}
	g.card = nil
	g.phase = models.PhaseIdle
	g.version++

	return g.completeLocked(), nil
}

// SpeakCard reads the shown card's word or example sentence
func (g *WheelGame) SpeakCard(part models.CardPart) error {
	g.mu.Lock()
	if g.card == nil {
		g.mu.Unlock()
		return ErrNoCard
	}
	e := g.pool[g.card.index]
	g.mu.Unlock()

	if part == models.PartSentence {
		g.say(e.Sentence)
	} else {
		g.say(e.Word)
	}
	return nil
}

// Snapshot returns the wheel as a client should draw it
func (g *WheelGame) Snapshot() models.WheelSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := models.WheelSnapshot{
		Open:      g.open,
		RoundID:   g.roundID,
		Mode:      g.mode,
		Phase:     g.phase,
		PoolSize:  len(g.pool),
		Remaining: len(g.pool) - len(g.eliminated),
		Complete:  g.completeLocked(),
		Rotation:  g.rotation,
		Sectors:   make([]models.Sector, len(g.pool)),
		Version:   g.version,
	}

	for i, e := range g.pool {
		_, gone := g.eliminated[i]
		s := models.Sector{Index: i, Eliminated: gone}
		if !gone {
			label := e.Word
			if g.mode == models.ModeMeaningToWord {
				label = e.Meaning
			}
			s.Label = truncateLabel(label, g.cfg.LabelRunes)
		}
		snap.Sectors[i] = s
	}

	if g.card != nil {
		view := g.cardViewLocked()
		snap.Card = &view
	}
	return snap
}

func (g *WheelGame) cardViewLocked() models.Flashcard {
	e := g.pool[g.card.index]
	view := models.Flashcard{
		Index:    g.card.index,
		Mode:     g.card.mode,
		Revealed: g.card.revealed,
	}

	if g.card.mode == models.ModeMeaningToWord {
		view.Question = e.Meaning
		view.Hint = joinHint(e.POS, "spell the word")
	} else {
		view.Question = e.Word
		view.Hint = joinHint(e.POS, "recall the meaning")
	}

	if g.card.revealed {
		entry := e
		view.Entry = &entry
	}
	return view
}

func (g *WheelGame) completeLocked() bool {
	return len(g.pool) > 0 && len(g.eliminated) >= len(g.pool)
}

func (g *WheelGame) cancelSettleLocked() {
	if g.stopSettle != nil {
		g.stopSettle()
		g.stopSettle = nil
	}
	// invalidates a settle callback that already fired but is waiting on mu
	g.spinSeq++
}

func (g *WheelGame) say(text string) {
	if g.speaker != nil {
		g.speaker.Speak(text)
	}
}

func joinHint(pos, prompt string) string {
	if pos == "" {
		return prompt
	}
	return pos + " · " + prompt
}

func truncateLabel(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
