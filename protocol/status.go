package protocol

import "fmt"

// StatusCode is the confirmation code carried in the first payload byte of
// an Ack frame.
type StatusCode byte

// Confirmation codes per datasheet page "Confirmation code definitions".
const (
	// StatusOK indicates the command completed successfully
	StatusOK StatusCode = 0x00

	// StatusPacketReceiveErr indicates the sensor failed to receive the
	// command packet cleanly
	StatusPacketReceiveErr StatusCode = 0x01

	// StatusNoFinger indicates no finger was present on the window
	StatusNoFinger StatusCode = 0x02

	// StatusImageFail indicates the sensor failed to capture a usable image
	StatusImageFail StatusCode = 0x03

	// StatusImageMess indicates the captured image was too disordered to
	// extract features from
	StatusImageMess StatusCode = 0x06

	// StatusFeatureFail indicates feature extraction failed, usually from
	// too small or smudged an image
	StatusFeatureFail StatusCode = 0x07

	// StatusNoMatch indicates the two character buffers did not match
	StatusNoMatch StatusCode = 0x08

	// StatusInvalidImage indicates the image buffer holds no valid image
	StatusInvalidImage StatusCode = 0x15
)

// String returns a human-readable name for the confirmation code.
func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPacketReceiveErr:
		return "packet receive error"
	case StatusNoFinger:
		return "no finger on sensor"
	case StatusImageFail:
		return "image capture failed"
	case StatusImageMess:
		return "image too messy"
	case StatusFeatureFail:
		return "feature extraction failed"
	case StatusNoMatch:
		return "fingers do not match"
	case StatusInvalidImage:
		return "invalid image"
	default:
		return fmt.Sprintf("unknown status 0x%02X", byte(s))
	}
}

// Recoverable reports whether retrying the same command right away can
// succeed. No finger and a transient capture failure clear up as soon as
// the finger is placed properly; everything else needs the caller to
// change something first (re-prompt the user, restart the workflow), so a
// fixed retry loop would just spin.
func (s StatusCode) Recoverable() bool {
	return s == StatusNoFinger || s == StatusImageFail
}
