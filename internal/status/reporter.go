package status

import (
	"fmt"
	"time"

	"github.com/oshokin/siren-node/internal/domain/siren"
)

// transientHold is how long an event banner overrides the regular status
// before normal output resumes.
const transientHold = 2 * time.Second

// Reporter formats engine state into display lines. It keeps only the
// transient banner as state; everything else is derived per call.
type Reporter struct {
	// now supplies the current time, injected so tests can run simulated clocks.
	now func() time.Time
	// transient is the banner currently overriding the regular first line.
	transient string
	// transientUntil is when the banner expires.
	transientUntil time.Time
}

// NewReporter creates a reporter. A nil now falls back to time.Now.
func NewReporter(now func() time.Time) *Reporter {
	if now == nil {
		now = time.Now
	}

	return &Reporter{now: now}
}

// ShowTransient replaces the first status line with the given banner for a
// short hold, e.g. "MUTED" or "Remote Cmd: FIRE".
func (r *Reporter) ShowTransient(text string) {
	r.transient = text
	r.transientUntil = r.now().Add(transientHold)
}

// Lines returns the two display lines for the given engine snapshot and the
// operator's current duration selection. During a run the second line is the
// remaining time as MM:SS; callers must refresh at least once per second so
// the countdown never skips.
func (r *Reporter) Lines(snap siren.Snapshot, sel siren.Selection) (string, string) {
	now := r.now()

	line1 := "Siren ready"
	line2 := fmt.Sprintf("Duration: %s", sel.Label)

	if snap.Active {
		line1 = fmt.Sprintf("%s %s", snap.Hazard, sel.Label)
		line2 = formatRemaining(snap.StopAt.Sub(now))
	}

	if r.transient != "" && now.Before(r.transientUntil) {
		line1 = r.transient
	}

	return line1, line2
}

// formatRemaining renders a non-negative MM:SS countdown,
// truncated to whole seconds.
func formatRemaining(left time.Duration) string {
	if left < 0 {
		left = 0
	}

	seconds := int(left / time.Second)

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
