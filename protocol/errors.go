package protocol

import "fmt"

// BadMarkerError indicates the byte stream did not begin with the fixed
// start marker. The link is desynchronized; nothing past this point can be
// trusted as a frame.
type BadMarkerError struct {
	Got uint16
}

func (e *BadMarkerError) Error() string {
	return fmt.Sprintf("bad start marker: got 0x%04X, expected 0x%04X", e.Got, uint16(StartMarker))
}

// BadAddressError indicates a frame carried a device address other than
// the configured one.
type BadAddressError struct {
	Got  uint32
	Want uint32
}

func (e *BadAddressError) Error() string {
	return fmt.Sprintf("bad device address: got 0x%08X, expected 0x%08X", e.Got, e.Want)
}

// TruncatedError indicates the byte source dried up before the frame
// completed. Err carries the underlying read failure, typically a timeout.
type TruncatedError struct {
	// Field is the frame section being read when the source ran out
	Field string

	Err error
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("frame truncated reading %s: %v", e.Field, e.Err)
}

func (e *TruncatedError) Unwrap() error {
	return e.Err
}
