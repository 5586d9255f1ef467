package sensor

import (
	"errors"
	"fmt"

	"github.com/veldtec/go-r307/protocol"
)

// ErrTimeout indicates the serial read deadline elapsed before the sensor
// produced any data. Surfaced wrapped in a protocol.TruncatedError.
var ErrTimeout = errors.New("read timed out")

// StatusError indicates the sensor acknowledged a command with a terminal
// confirmation code. The condition will not clear on its own; the caller
// has to change something (usually re-prompt the user) and start over.
type StatusError struct {
	// Op is the operation that failed
	Op string

	// Status is the confirmation code from the Ack frame
	Status protocol.StatusCode
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Op, e.Status, byte(e.Status))
}

// ExhaustedError indicates a recoverable confirmation code persisted past
// the configured attempt limit.
type ExhaustedError struct {
	// Op is the operation that was retried
	Op string

	// Attempts is how many times the command was issued
	Attempts int

	// LastStatus is the confirmation code of the final attempt
	LastStatus protocol.StatusCode
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: gave up after %d attempts, last status: %s",
		e.Op, e.Attempts, e.LastStatus)
}

// CorruptAckError indicates an Ack frame arrived with a checksum that does
// not cover its content. This is transport-level corruption, fatal for the
// current transaction and never retried.
type CorruptAckError struct {
	Op   string
	Got  uint16
	Want uint16
}

func (e *CorruptAckError) Error() string {
	return fmt.Sprintf("%s: ack checksum mismatch: got 0x%04X, want 0x%04X",
		e.Op, e.Got, e.Want)
}

// ProtocolViolationError indicates a frame of an unexpected type arrived
// mid-exchange. The sensor's framing state is unknown from here on, so the
// whole operation aborts with no partial recovery.
type ProtocolViolationError struct {
	Op  string
	Got protocol.PacketType
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("%s: unexpected %s frame", e.Op, e.Got)
}
