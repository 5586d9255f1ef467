package sensor

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/veldtec/go-r307/protocol"
)

// CaptureImage scans the finger on the window into the sensor's image
// buffer, retrying while no finger is present.
func (d *Device) CaptureImage(ctx context.Context) error {
	_, err := d.execute(ctx, "capture image", []byte{byte(protocol.CmdGenImg)})
	return err
}

// ConvertImage generates a character file from the image buffer into the
// given buffer slot.
func (d *Device) ConvertImage(ctx context.Context, slot BufferSlot) error {
	_, err := d.execute(ctx, "convert image", []byte{byte(protocol.CmdImg2Tz), byte(slot)})
	return err
}

// TemplateCount reads the number of templates stored in the sensor's
// flash library.
func (d *Device) TemplateCount(ctx context.Context) (uint16, error) {
	data, err := d.execute(ctx, "template count", []byte{byte(protocol.CmdTemplateCount)})
	if err != nil {
		return 0, err
	}
	if len(data) < 2 {
		return 0, fmt.Errorf("template count: ack payload too short: %d bytes", len(data))
	}
	return binary.BigEndian.Uint16(data[:2]), nil
}

// matchBuffers runs the on-device comparison of the two character buffers.
// The sensor reports a mismatch as a distinct confirmation code rather
// than an error, so it is folded into the outcome here.
func (d *Device) matchBuffers(ctx context.Context) (MatchOutcome, error) {
	data, err := d.execute(ctx, "match templates", []byte{byte(protocol.CmdMatch)})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == protocol.StatusNoMatch {
			return MatchOutcome{Matched: false, Confidence: 0}, nil
		}
		return MatchOutcome{}, err
	}
	if len(data) < 2 {
		return MatchOutcome{}, fmt.Errorf("match templates: ack payload too short for score: %d bytes", len(data))
	}
	return MatchOutcome{
		Matched:    true,
		Confidence: binary.BigEndian.Uint16(data[:2]),
	}, nil
}
