package logging

import (
	"time"

	"github.com/eunmann/membench/pkg/humanfmt"
	"github.com/rs/zerolog"
)

// ProgressTracker tracks completed outer trials and estimates the time
// left from a moving average of recent trial durations.
type ProgressTracker struct {
	total     int
	completed int
	startTime time.Time

	recent    []time.Duration
	maxRecent int
}

// NewProgressTracker creates a tracker expecting total items.
func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{
		total:     total,
		startTime: time.Now(),
		recent:    make([]time.Duration, 0, 5),
		maxRecent: 5,
	}
}

// RecordCompletion records that an item completed with the given duration.
func (pt *ProgressTracker) RecordCompletion(d time.Duration) {
	pt.completed++
	if len(pt.recent) >= pt.maxRecent {
		pt.recent = pt.recent[1:]
	}
	pt.recent = append(pt.recent, d)
}

// Completed returns the number of completed items.
func (pt *ProgressTracker) Completed() int {
	return pt.completed
}

// Total returns the expected number of items.
func (pt *ProgressTracker) Total() int {
	return pt.total
}

// Elapsed returns time since tracking started.
func (pt *ProgressTracker) Elapsed() time.Duration {
	return time.Since(pt.startTime)
}

// ETA returns the estimated time remaining, or 0 before the first
// completion and after the last.
func (pt *ProgressTracker) ETA() time.Duration {
	remaining := pt.total - pt.completed
	if pt.completed == 0 || remaining <= 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range pt.recent {
		sum += d
	}
	return sum / time.Duration(len(pt.recent)) * time.Duration(remaining)
}

// CompletionEvent helps build consistent completion log events.
type CompletionEvent struct {
	log     zerolog.Logger
	event   string
	phase   string
	elapsed time.Duration
	fields  map[string]interface{}
}

// NewCompletionEvent creates a new completion event builder.
func NewCompletionEvent(log zerolog.Logger, event, phase string, elapsed time.Duration) *CompletionEvent {
	return &CompletionEvent{
		log:     log,
		event:   event,
		phase:   phase,
		elapsed: elapsed,
		fields:  make(map[string]interface{}),
	}
}

// Str adds a string field.
func (ce *CompletionEvent) Str(key, val string) *CompletionEvent {
	ce.fields[key] = val
	return ce
}

// Int adds an int field.
func (ce *CompletionEvent) Int(key string, val int) *CompletionEvent {
	ce.fields[key] = val
	return ce
}

// Bytes adds a byte count with optional human-readable companion.
func (ce *CompletionEvent) Bytes(key string, bytes int64) *CompletionEvent {
	ce.fields[key] = bytes
	if IsPrettyMode() {
		ce.fields[key+"_h"] = humanfmt.Bytes(bytes)
	}
	return ce
}

// Count adds a count with optional human-readable companion.
func (ce *CompletionEvent) Count(key string, n int64) *CompletionEvent {
	ce.fields[key] = n
	if IsPrettyMode() {
		ce.fields[key+"_h"] = humanfmt.Count(n)
	}
	return ce
}

// PerOp adds the mean duration of one operation out of n performed
// during the event's elapsed time.
func (ce *CompletionEvent) PerOp(n int) *CompletionEvent {
	if n <= 0 {
		return ce
	}
	perOp := ce.elapsed / time.Duration(n)
	ce.fields["ns_per_op"] = perOp.Nanoseconds()
	if IsPrettyMode() {
		ce.fields["per_op_h"] = humanfmt.Duration(perOp)
		ce.fields["rate_h"] = humanfmt.Rate(int64(n), ce.elapsed)
	}
	return ce
}

// ProgressFromTracker adds done/total/percentage and ETA fields.
func (ce *CompletionEvent) ProgressFromTracker(pt *ProgressTracker) *CompletionEvent {
	done, total := pt.Completed(), pt.Total()
	ce.fields["done"] = done
	ce.fields["total"] = total
	if total > 0 {
		ce.fields["progress_pct"] = float64(done) * 100.0 / float64(total)
	}
	if eta := pt.ETA(); eta > 0 {
		ce.fields["eta_ms"] = eta.Milliseconds()
		if IsPrettyMode() {
			ce.fields["eta_h"] = humanfmt.Duration(eta)
		}
	}
	return ce
}

// Log emits the completion event at info level.
func (ce *CompletionEvent) Log(msg string) {
	ce.emit(ce.log.Info(), msg)
}

// LogDebug emits the completion event at debug level.
func (ce *CompletionEvent) LogDebug(msg string) {
	ce.emit(ce.log.Debug(), msg)
}

func (ce *CompletionEvent) emit(e *zerolog.Event, msg string) {
	e = e.Str("event", ce.event).
		Str("phase", ce.phase).
		Float64("elapsed_s", ce.elapsed.Seconds())

	if IsPrettyMode() {
		e = e.Str("elapsed_h", humanfmt.Duration(ce.elapsed))
	}

	for k, v := range ce.fields {
		e = e.Interface(k, v)
	}

	e.Msg(msg)
}

// PhaseComplete starts a phase completion event.
func PhaseComplete(log zerolog.Logger, phase string, elapsed time.Duration) *CompletionEvent {
	return NewCompletionEvent(log, "phase_completed", phase, elapsed)
}

// TrialComplete starts an outer trial completion event.
func TrialComplete(log zerolog.Logger, phase string, elapsed time.Duration) *CompletionEvent {
	return NewCompletionEvent(log, "trial_completed", phase, elapsed)
}
