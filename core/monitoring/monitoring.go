// Package monitoring forwards faults to an error-reporting backend. The
// process-wide monitor is a no-op until Init installs one.
package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/model"
)

// Monitor receives captured errors and recovered panics.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// Recover reports a value recovered from a panic.
	Recover(r any)
	Flush(timeout time.Duration)
}

// NopMonitor discards everything.
type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover(any)                               {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init installs m as the process-wide monitor. A nil m is ignored.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

func get() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	get().CaptureException(err, tags)
}

// CaptureSafety records a safety fault raised by component. The error kind
// and the offending value are attached as tags.
func CaptureSafety(component string, err error, value float64) {
	if err == nil {
		return
	}
	get().CaptureException(err, map[string]string{
		"component": component,
		"kind":      model.KindOf(err).String(),
		"value":     strconv.FormatFloat(value, 'f', -1, 64),
	})
}

// Recover reports a panic of the calling goroutine and re-panics. It must be
// deferred directly: defer monitoring.Recover().
func Recover() {
	if r := recover(); r != nil {
		m := get()
		m.Recover(r)
		m.Flush(2 * time.Second)
		panic(r)
	}
}

// Flush waits up to d for buffered events to be delivered.
func Flush(d time.Duration) { get().Flush(d) }
