package ports

import (
	"time"

	"svw.info/sumgrid/internal/domain"
)

// Generator creates new puzzles for a target level.
type Generator interface {
	Generate(seed int64, level int) *domain.Puzzle
}

// Task is a cancellable scheduled effect.
type Task interface {
	// Stop cancels the task. It reports whether the cancel won the race
	// with the task firing.
	Stop() bool
}

// Scheduler arms delayed effects (countdown tick, success settle,
// duplicate invalidation).
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}
