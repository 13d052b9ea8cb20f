// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation such as a parse or a
//              directory check and logs it when stopped.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-10
// Modified: 2025-03-10
//
// Change History:
// - 2025-03-10 v0.1.0: Initial timer

package log

import "time"

// Timer measures an operation and logs its duration once
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	stopped   bool
}

func newTimer(logger *Logger, operation string) *Timer {
	return &Timer{logger: logger, operation: operation, start: time.Now(), fields: make(Fields)}
}

// WithField adds a field logged when the timer stops
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop logs "<operation> completed" at debug level and returns the
// elapsed time; later calls return zero
func (t *Timer) Stop() time.Duration {
	return t.finish(nil)
}

// StopWithError logs "<operation> failed" at error level
func (t *Timer) StopWithError(err error) time.Duration {
	return t.finish(err)
}

func (t *Timer) finish(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()
	if t.logger == nil {
		return elapsed
	}

	fields := t.fields.Merge(Fields{
		"operation":   t.operation,
		"duration_ms": float64(elapsed.Nanoseconds()) / 1e6,
	})
	if err != nil {
		fields["success"] = false
		t.logger.ErrorWithErr(t.operation+" failed", err, fields)
	} else {
		t.logger.Debug(t.operation+" completed", fields)
	}
	return elapsed
}
