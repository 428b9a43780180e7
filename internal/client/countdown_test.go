package client

import (
	"sync"
	"testing"
	"time"

	"timeclass-backend/internal/approval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickRecorder struct {
	mu    sync.Mutex
	ticks []Tick
}

func (r *tickRecorder) record(t Tick) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, t)
}

func (r *tickRecorder) all() []Tick {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Tick, len(r.ticks))
	copy(out, r.ticks)
	return out
}

func (r *tickRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks)
}

func TestCountdownExpiredTargetFreezesImmediately(t *testing.T) {
	rec := &tickRecorder{}
	c := NewCountdown(rec.record)
	c.interval = 5 * time.Millisecond

	c.Start(time.Now().Add(-time.Minute))

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, time.Millisecond)

	// Frozen: no further frames after the expired one
	time.Sleep(50 * time.Millisecond)
	ticks := rec.all()
	require.Len(t, ticks, 1)
	assert.Equal(t, PhaseExpired, ticks[0].Phase)
	assert.Equal(t, time.Duration(0), ticks[0].Remaining)
	assert.Equal(t, approval.SeverityExpired, ticks[0].Severity)
}

func TestCountdownTicksDownThenExpires(t *testing.T) {
	rec := &tickRecorder{}
	c := NewCountdown(rec.record)
	c.interval = 5 * time.Millisecond

	c.Start(time.Now().Add(30 * time.Millisecond))
	defer c.Stop()

	require.Eventually(t, func() bool {
		ticks := rec.all()
		return len(ticks) > 0 && ticks[len(ticks)-1].Phase == PhaseExpired
	}, time.Second, time.Millisecond)

	ticks := rec.all()
	require.GreaterOrEqual(t, len(ticks), 2)

	// All frames before the last are running with decreasing remaining
	for i := 0; i < len(ticks)-1; i++ {
		assert.Equal(t, PhaseRunning, ticks[i].Phase)
		if i > 0 {
			assert.LessOrEqual(t, ticks[i].Remaining, ticks[i-1].Remaining)
		}
	}
	assert.Equal(t, PhaseExpired, ticks[len(ticks)-1].Phase)
}

func TestCountdownSeverityOfDistantTarget(t *testing.T) {
	rec := &tickRecorder{}
	c := NewCountdown(rec.record)
	c.interval = time.Hour // only the initial frame matters here

	c.Start(time.Now().Add(48*time.Hour + time.Minute))
	defer c.Stop()

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, approval.SeverityNominal, rec.all()[0].Severity)
}

func TestCountdownRestartDoesNotOverlapTickers(t *testing.T) {
	rec := &tickRecorder{}
	c := NewCountdown(rec.record)
	c.interval = 10 * time.Millisecond

	target := time.Now().Add(time.Hour)
	c.Start(target)
	c.Start(target) // remount with the same deadline
	defer c.Stop()

	time.Sleep(300 * time.Millisecond)

	// A single ticker yields ~30 frames (+2 initial); two overlapping
	// tickers would yield roughly double that.
	assert.Less(t, rec.count(), 45)
	assert.Greater(t, rec.count(), 10)
}

func TestCountdownStopCancelsTicks(t *testing.T) {
	rec := &tickRecorder{}
	c := NewCountdown(rec.record)
	c.interval = 5 * time.Millisecond

	c.Start(time.Now().Add(time.Hour))
	require.Eventually(t, func() bool { return rec.count() > 0 }, time.Second, time.Millisecond)

	c.Stop()
	settled := rec.count()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, rec.count(), settled+1)
}
