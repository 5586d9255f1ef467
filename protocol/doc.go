// Package protocol implements the wire format of R307/AS608-family optical
// fingerprint sensors.
//
// This package is a pure codec: it builds and parses frames, with no I/O
// beyond reading bytes from an io.Reader the caller hands it.
//
// # Frame format
//
// Every exchange with the sensor uses the same frame, big-endian:
//
//	[MARKER(2)][ADDRESS(4)][TYPE(1)][LENGTH(2)][PAYLOAD...][CHECKSUM(2)]
//
// Where:
//   - MARKER = fixed 0xEF01
//   - ADDRESS = 4-byte device address (0xFFFFFFFF broadcast by default)
//   - LENGTH = payload length + 2, covering the trailing checksum
//   - CHECKSUM = (TYPE + LENGTH + sum of payload bytes) mod 65536
//
// # Usage
//
// Encode a command frame:
//
//	raw := protocol.Encode(protocol.PacketCommand, protocol.DefaultAddress,
//	    []byte{byte(protocol.CmdGenImg)})
//
// Read a frame back:
//
//	frame, err := protocol.ReadFrame(port, protocol.DefaultAddress)
//	if err != nil {
//	    return err
//	}
//	if !frame.ChecksumOK() {
//	    // transport corruption; the stream can no longer be trusted
//	}
//
// ReadFrame deliberately does not verify the checksum: whether a mismatch
// is retryable depends on context only the caller has.
package protocol
