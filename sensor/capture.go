package sensor

import (
	"context"
	"fmt"

	"github.com/veldtec/go-r307/template"
)

// captureState is the capture workflow's position in
// Idle → Capturing → Converting → Uploading → Done | Failed.
type captureState int

const (
	captureIdle captureState = iota
	captureCapturing
	captureConverting
	captureUploading
	captureDone
	captureFailed
)

// CaptureTemplate acquires a fresh template from a live finger: capture an
// image (with bounded retries while no finger is present), extract its
// features into character buffer 1, and stream the resulting template to
// the host. The returned template is exactly template.Size bytes.
//
// Terminal failure statuses (messy image, failed extraction) are returned
// without internal retry; the caller is the one who can re-prompt the user
// and run a fresh capture.
func (d *Device) CaptureTemplate(ctx context.Context) (template.Template, error) {
	var (
		state   = captureIdle
		tpl     template.Template
		failure error
	)

	for {
		switch state {
		case captureIdle:
			state = captureCapturing

		case captureCapturing:
			d.reportProgress(Progress{Phase: PhaseCapturing})
			if err := d.CaptureImage(ctx); err != nil {
				failure = err
				state = captureFailed
				break
			}
			state = captureConverting

		case captureConverting:
			d.reportProgress(Progress{Phase: PhaseConverting})
			if err := d.ConvertImage(ctx, CharBuffer1); err != nil {
				failure = err
				state = captureFailed
				break
			}
			state = captureUploading

		case captureUploading:
			d.reportProgress(Progress{Phase: PhaseUploading})
			t, err := d.UploadTemplate(ctx, CharBuffer1)
			if err != nil {
				failure = err
				state = captureFailed
				break
			}
			tpl = t
			state = captureDone

		case captureDone:
			d.reportProgress(Progress{Phase: PhaseDone})
			d.logInfo("template captured", "bytes", len(tpl))
			return tpl, nil

		case captureFailed:
			return nil, fmt.Errorf("capture template: %w", failure)
		}
	}
}
