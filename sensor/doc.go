// Package sensor drives R307/AS608-family optical fingerprint sensors
// over a serial link.
//
// # Overview
//
// The package stacks four layers on one exclusive connection:
//
//   - transport: open/close the serial port, read and write whole frames
//     bounded by a read timeout
//   - transactions: one command frame out, one Ack frame in, with Ack
//     checksum verification and bounded retry for recoverable statuses
//   - transfers: chunked template streaming to and from the sensor's
//     character buffers
//   - workflows: the capture state machine (image → features → template
//     upload) and the match state machine (load stored → capture live →
//     on-device compare)
//
// # Basic usage
//
//	dev, err := sensor.Open("/dev/ttyUSB0")
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	tpl, err := dev.CaptureTemplate(ctx)     // enroll a finger
//	...
//	outcome, err := dev.MatchTemplate(ctx, tpl) // verify a finger later
//	if outcome.Matched {
//	    fmt.Println("confidence:", outcome.Confidence)
//	}
//
// # Retry semantics
//
// Only "try again right now" conditions are retried internally: no finger
// on the window and transient capture failures, up to WithMaxAttempts
// with WithRetryDelay in between. Conditions that need the user to change
// something (messy image, failed feature extraction) surface immediately
// as a StatusError so the caller can re-prompt and start a fresh
// workflow. Transport corruption (CorruptAckError, framing errors) is
// never retried here; callers may reopen the device.
//
// # Concurrency
//
// The sensor is half-duplex with no frame IDs: one transaction in flight
// at a time, strictly request/response. A Device provides no locking of
// its own; serialize access to one physical sensor externally.
//
// # Hardware independence
//
// Open talks to a real serial port via go.bug.st/serial. NewDevice
// accepts any io.ReadWriter, which is how tests run against scripted and
// behavioral fakes.
package sensor
