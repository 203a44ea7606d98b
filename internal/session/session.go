// Package session implements the round lifecycle: countdown, scoring,
// level progression, and the delayed effects around the live board.
package session

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"svw.info/sumgrid/internal/board"
	"svw.info/sumgrid/internal/domain"
	"svw.info/sumgrid/internal/ports"
)

// Config carries the tunable timings and scoring constants.
type Config struct {
	TimeBudget        int           // seconds per round
	TickInterval      time.Duration // countdown granularity
	SettleDelay       time.Duration // grace before auto-success is declared
	InvalidationDelay time.Duration // grace before a duplicate write is forced empty
	StartScore        int
	WinAward          int
	Seed              func() int64 // per-round seed source
}

func (c *Config) defaults() {
	if c.TimeBudget <= 0 {
		c.TimeBudget = 300
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = 500 * time.Millisecond
	}
	if c.InvalidationDelay <= 0 {
		c.InvalidationDelay = 2 * time.Second
	}
	if c.StartScore <= 0 {
		c.StartScore = 120
	}
	if c.WinAward <= 0 {
		c.WinAward = 50
	}
	if c.Seed == nil {
		c.Seed = func() int64 { return time.Now().UnixNano() }
	}
}

// Session owns one player's rounds. All entry points are synchronous;
// delayed effects run on scheduler goroutines and are stamped with the
// generation at arm time, so nothing stale ever touches a superseded
// board.
type Session struct {
	mu     sync.Mutex
	cfg    Config
	gen    ports.Generator
	sched  ports.Scheduler
	logger *slog.Logger

	generation uint64
	level      int
	score      int
	timeLeft   int
	state      domain.State
	showErrors bool

	puzzle *domain.Puzzle
	board  *board.Board

	pendingDup *domain.DuplicatePair
	tickTask   ports.Task
	settleTask ports.Task
	dupTask    ports.Task
}

// New creates a session and starts its first round at the given level.
func New(cfg Config, gen ports.Generator, sched ports.Scheduler, logger *slog.Logger, level int) *Session {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	if level < 1 {
		level = 1
	}
	s := &Session{cfg: cfg, gen: gen, sched: sched, logger: logger, score: cfg.StartScore}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start(level)
	return s
}

// start begins a fresh round. The generation bump plus cancelTasks
// invalidates every outstanding delayed effect. Callers hold the lock.
func (s *Session) start(level int) {
	s.generation++
	s.cancelTasks()
	seed := s.cfg.Seed()
	s.level = level
	s.puzzle = s.gen.Generate(seed, level)
	s.board = board.New(s.puzzle, rand.New(rand.NewSource(seed+1)))
	s.timeLeft = s.cfg.TimeBudget
	s.state = domain.InProgress
	s.showErrors = false
	s.armTick()
	s.logger.Debug("round started", "level", level, "seed", seed, "generation", s.generation)
}

func (s *Session) cancelTasks() {
	for _, t := range []*ports.Task{&s.tickTask, &s.settleTask, &s.dupTask} {
		if *t != nil {
			(*t).Stop()
			*t = nil
		}
	}
	s.pendingDup = nil
}

func (s *Session) armTick() {
	gen := s.generation
	s.tickTask = s.sched.After(s.cfg.TickInterval, func() { s.tickAt(gen) })
}

func (s *Session) tickAt(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.state != domain.InProgress {
		return
	}
	s.applyTick()
}

// Tick advances the countdown by one interval. Exposed for adapters
// that drive time themselves; the scheduler path uses it too.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.InProgress {
		return
	}
	s.applyTick()
}

func (s *Session) applyTick() {
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.state = domain.GameOver
		s.cancelTasks()
		s.logger.Info("time expired", "level", s.level, "score", s.score)
		return
	}
	s.armTick()
}

// EditCell applies a user write. It reports false when the session is
// terminal or the input invalid; nothing mutates in that case.
func (s *Session) EditCell(idx int, v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.InProgress {
		return false
	}
	if !s.board.SetCell(idx, v) {
		return false
	}
	s.afterMutation()
	return true
}

// Hint reveals one empty cell's correct digit, then runs the same
// post-mutation handling as a user edit (a revealed digit can collide
// with a misplaced copy elsewhere). False when terminal or full.
func (s *Session) Hint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.InProgress {
		return false
	}
	if _, ok := s.board.RevealHint(); !ok {
		return false
	}
	s.afterMutation()
	return true
}

// afterMutation re-syncs the duplicate invalidation timer with the
// board and re-checks auto-success. Callers hold the lock.
func (s *Session) afterMutation() {
	dup, ok := s.board.Duplicate()
	switch {
	case ok && (s.pendingDup == nil || *s.pendingDup != dup):
		// New or replaced pair: the old timer dies with it.
		if s.dupTask != nil {
			s.dupTask.Stop()
		}
		s.pendingDup = &dup
		gen := s.generation
		s.dupTask = s.sched.After(s.cfg.InvalidationDelay, func() { s.expireDuplicate(gen) })
	case !ok && s.pendingDup != nil:
		if s.dupTask != nil {
			s.dupTask.Stop()
			s.dupTask = nil
		}
		s.pendingDup = nil
	}
	s.checkAutoSuccess()
}

func (s *Session) expireDuplicate(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.state != domain.InProgress {
		return
	}
	if !s.board.ExpireDuplicate() {
		return
	}
	s.pendingDup = nil
	s.dupTask = nil
	s.checkAutoSuccess()
}

// checkAutoSuccess arms (or re-arms) the settle delay whenever the
// board is fully correct, and cancels it when a later mutation breaks
// correctness. The transition itself re-verifies at expiry.
func (s *Session) checkAutoSuccess() {
	if s.state != domain.InProgress {
		return
	}
	if !s.board.IsFullyCorrect() {
		if s.settleTask != nil {
			s.settleTask.Stop()
			s.settleTask = nil
		}
		return
	}
	if s.settleTask != nil {
		s.settleTask.Stop()
	}
	gen := s.generation
	s.settleTask = s.sched.After(s.cfg.SettleDelay, func() { s.settle(gen) })
}

func (s *Session) settle(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.state != domain.InProgress {
		return
	}
	if !s.board.IsFullyCorrect() {
		return
	}
	s.succeed("auto")
}

func (s *Session) succeed(via string) {
	s.state = domain.Success
	s.score += s.cfg.WinAward
	s.cancelTasks()
	s.logger.Info("round won", "via", via, "level", s.level, "score", s.score, "timeLeft", s.timeLeft)
}

// Submit handles the manual check. It is only accepted on a complete,
// duplicate-free grid. All six sums matching the targets wins the
// round; any mismatch sets the persistent showErrors flag instead.
// Alternate permutations that hit every target are accepted here even
// though they never auto-succeed.
func (s *Session) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.InProgress || !s.board.IsComplete() {
		return false
	}
	t := s.puzzle.Targets
	for r := 0; r < 3; r++ {
		if s.board.RowSum(r) != t.Rows[r] {
			s.showErrors = true
			return true
		}
	}
	for c := 0; c < 3; c++ {
		if s.board.ColSum(c) != t.Cols[c] {
			s.showErrors = true
			return true
		}
	}
	s.succeed("submit")
	return true
}

// Reset forfeits the current board and restarts the same level.
// No score penalty.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start(s.level)
}

// AdvanceOrRetry leaves a terminal state: Success advances to the next
// level, GameOver retries the same one. No-op while in progress.
func (s *Session) AdvanceOrRetry() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case domain.Success:
		s.start(s.level + 1)
	case domain.GameOver:
		s.start(s.level)
	default:
		return false
	}
	return true
}

// Close cancels every outstanding task. The session is dead afterwards;
// the generation bump keeps in-flight timers from reviving it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.cancelTasks()
}

// Snapshot returns the immutable view handed to the presentation
// adapter. Per-cell correctness is gated by the level's row visibility
// rule; the board's own correctness computation is not.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := domain.Snapshot{
		Targets:    s.puzzle.Targets,
		Score:      s.score,
		Level:      s.level,
		TimeLeft:   s.timeLeft,
		ShowErrors: s.showErrors,
		State:      s.state,
	}
	cells := s.board.Cells()
	for i, v := range cells {
		snap.Cells[i] = s.board.Value(i)
		snap.Correct[i] = v != 0 && v == s.puzzle.Solution[i] && domain.RowHighlightable(s.level, i/3)
	}
	for r := 0; r < 3; r++ {
		snap.RowSums[r] = s.board.RowSum(r)
	}
	for c := 0; c < 3; c++ {
		snap.ColSums[c] = s.board.ColSum(c)
	}
	if dup, ok := s.board.Duplicate(); ok {
		d := dup
		snap.Duplicate = &d
	}
	return snap
}
