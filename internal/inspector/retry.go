package inspector

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/sells-group/proposal-cli/internal/config"
)

// maxCaptureBackoff caps the sleep between capture attempts so a misbehaving
// site cannot stall the whole inspection phase.
const maxCaptureBackoff = 10 * time.Second

// captureBackoff computes the delay before retrying a failed capture:
// exponential from the configured base with 25% jitter.
func captureBackoff(attempt int, cfg config.InspectConfig) time.Duration {
	base := time.Duration(cfg.RetryBackoffMs) * time.Millisecond
	if base <= 0 {
		base = 500 * time.Millisecond
	}

	delay := float64(base) * math.Pow(2, float64(attempt))
	if delay > float64(maxCaptureBackoff) {
		delay = float64(maxCaptureBackoff)
	}

	jitter := (rand.Float64()*2 - 1) * delay * 0.25
	delay += jitter
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
