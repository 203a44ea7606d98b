// Package sched provides the wall-clock implementation of the
// scheduler port.
package sched

import (
	"time"

	"svw.info/sumgrid/internal/ports"
)

// Wall arms effects on real timers.
type Wall struct{}

func New() *Wall { return &Wall{} }

func (w *Wall) After(d time.Duration, fn func()) ports.Task {
	return timerTask{time.AfterFunc(d, fn)}
}

type timerTask struct{ t *time.Timer }

func (t timerTask) Stop() bool { return t.t.Stop() }
