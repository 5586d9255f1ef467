package sensor

import (
	"context"
	"fmt"
	"time"

	"github.com/veldtec/go-r307/protocol"
)

// execute issues one command and interprets the acknowledgement, retrying
// commands that failed with a recoverable confirmation code up to the
// configured attempt limit with the configured delay in between. The split
// matters: "try again right now" conditions (no finger yet) are retried
// here; "fix something first" conditions (messy image, bad placement) are
// surfaced immediately so the caller can re-prompt instead of spinning.
//
// On success the Ack payload after the status byte is returned.
func (d *Device) execute(ctx context.Context, op string, payload []byte) ([]byte, error) {
	var last protocol.StatusCode

	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: cancelled: %w", op, err)
		}
		if attempt > 1 {
			d.logDebug("retrying command",
				"op", op,
				"attempt", attempt,
				"max_attempts", d.cfg.MaxAttempts,
				"last_status", last.String(),
			)
			if err := sleep(ctx, d.cfg.RetryDelay); err != nil {
				return nil, fmt.Errorf("%s: cancelled: %w", op, err)
			}
		}

		status, data, err := d.exchange(op, payload)
		if err != nil {
			return nil, err
		}

		switch {
		case status == protocol.StatusOK:
			return data, nil
		case status.Recoverable():
			last = status
		default:
			return nil, &StatusError{Op: op, Status: status}
		}
	}

	return nil, &ExhaustedError{
		Op:         op,
		Attempts:   d.cfg.MaxAttempts,
		LastStatus: last,
	}
}

// exchange performs a single command/ack round trip. The Ack checksum is
// verified here and a mismatch is fatal for the transaction: it means the
// transport corrupted bytes, not that the sensor is busy.
func (d *Device) exchange(op string, payload []byte) (protocol.StatusCode, []byte, error) {
	if err := d.writeFrame(protocol.PacketCommand, payload); err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	frame, err := d.readFrame()
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}
	if frame.Type != protocol.PacketAck {
		return 0, nil, &ProtocolViolationError{Op: op, Got: frame.Type}
	}
	if !frame.ChecksumOK() {
		want := protocol.Checksum(frame.Type, uint16(len(frame.Payload)+protocol.ChecksumSize), frame.Payload)
		return 0, nil, &CorruptAckError{Op: op, Got: frame.Checksum, Want: want}
	}
	if len(frame.Payload) == 0 {
		return 0, nil, fmt.Errorf("%s: ack carried no status byte", op)
	}

	return protocol.StatusCode(frame.Payload[0]), frame.Payload[1:], nil
}

// sleep waits for the retry delay or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
