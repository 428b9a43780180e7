package client

import (
	"sync"
	"time"

	"timeclass-backend/internal/approval"
)

type Phase int

const (
	PhaseRunning Phase = iota
	PhaseExpired
)

// Tick is one rendered countdown frame. Once the phase reaches
// PhaseExpired the display freezes; no further ticks are emitted.
type Tick struct {
	Phase     Phase
	Remaining time.Duration
	Severity  approval.Severity
}

// Countdown recomputes the time remaining until a deadline once per
// second. Restarting with a new target always cancels the previous
// ticker first, so a stop/start cycle (view remount) never leaves two
// tickers decrementing the same display.
type Countdown struct {
	interval time.Duration
	now      func() time.Time
	onTick   func(Tick)

	mu   sync.Mutex
	stop chan struct{}
}

func NewCountdown(onTick func(Tick)) *Countdown {
	return &Countdown{
		interval: time.Second,
		now:      time.Now,
		onTick:   onTick,
	}
}

func (c *Countdown) Start(target time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	stop := make(chan struct{})
	c.stop = stop
	go c.run(target, stop)
}

func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Countdown) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Countdown) run(target time.Time, stop chan struct{}) {
	if c.emit(target) {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.emit(target) {
				return
			}
		}
	}
}

// emit renders one frame and reports whether the countdown expired.
func (c *Countdown) emit(target time.Time) bool {
	remaining := target.Sub(c.now())
	if remaining <= 0 {
		c.onTick(Tick{Phase: PhaseExpired, Remaining: 0, Severity: approval.SeverityExpired})
		return true
	}
	c.onTick(Tick{Phase: PhaseRunning, Remaining: remaining, Severity: approval.Band(remaining)})
	return false
}
