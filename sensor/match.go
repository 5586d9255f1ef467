package sensor

import (
	"context"
	"fmt"
)

// MatchOutcome is the result of one match workflow invocation.
type MatchOutcome struct {
	// Matched reports whether the sensor judged the stored and live
	// templates to be the same finger
	Matched bool

	// Confidence is the sensor-reported match score. Meaningful only
	// relative to an application-chosen threshold; zero when Matched is
	// false.
	Confidence uint16
}

// matchState is the match workflow's position in
// Idle → LoadingStored → CapturingLive → ConvertingLive → Matching →
// Matched | NotMatched | Failed.
type matchState int

const (
	matchIdle matchState = iota
	matchLoadingStored
	matchCapturingLive
	matchConvertingLive
	matchMatching
	matchDone
	matchFailed
)

// MatchTemplate compares a previously stored template against a live
// finger. The stored template is downloaded into character buffer 1, the
// live capture is converted into character buffer 2 — never buffer 1, so
// the match command has two independent operands — and the on-device
// match reports the outcome with its confidence score.
func (d *Device) MatchTemplate(ctx context.Context, stored []byte) (MatchOutcome, error) {
	if len(stored) == 0 {
		return MatchOutcome{}, fmt.Errorf("match template: stored template is empty")
	}

	var (
		state   = matchIdle
		outcome MatchOutcome
		failure error
	)

	for {
		switch state {
		case matchIdle:
			state = matchLoadingStored

		case matchLoadingStored:
			d.reportProgress(Progress{Phase: PhaseLoadingStored})
			if err := d.DownloadTemplate(ctx, CharBuffer1, stored); err != nil {
				failure = err
				state = matchFailed
				break
			}
			state = matchCapturingLive

		case matchCapturingLive:
			d.reportProgress(Progress{Phase: PhaseCapturing})
			if err := d.CaptureImage(ctx); err != nil {
				failure = err
				state = matchFailed
				break
			}
			state = matchConvertingLive

		case matchConvertingLive:
			d.reportProgress(Progress{Phase: PhaseConverting})
			if err := d.ConvertImage(ctx, CharBuffer2); err != nil {
				failure = err
				state = matchFailed
				break
			}
			state = matchMatching

		case matchMatching:
			d.reportProgress(Progress{Phase: PhaseMatching})
			o, err := d.matchBuffers(ctx)
			if err != nil {
				failure = err
				state = matchFailed
				break
			}
			outcome = o
			state = matchDone

		case matchDone:
			d.reportProgress(Progress{Phase: PhaseDone})
			d.logInfo("match finished",
				"matched", outcome.Matched,
				"confidence", outcome.Confidence,
			)
			return outcome, nil

		case matchFailed:
			return MatchOutcome{}, fmt.Errorf("match template: %w", failure)
		}
	}
}
