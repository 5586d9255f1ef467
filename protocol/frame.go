package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frame is one decoded unit of the wire protocol: header, payload and the
// checksum exactly as carried on the wire. Decoding does not verify the
// checksum; callers that care (the transaction engine does, for Ack
// frames) check ChecksumOK themselves, since only they know whether a
// mismatch is fatal.
type Frame struct {
	// Type is the packet identifier byte
	Type PacketType

	// Address is the 4-byte device address the frame was read with
	Address uint32

	// Payload is the frame content between the length field and the checksum
	Payload []byte

	// Checksum is the 16-bit checksum carried in the trailing two bytes
	Checksum uint16
}

// ChecksumOK reports whether the carried checksum matches the payload.
func (f *Frame) ChecksumOK() bool {
	return f.Checksum == Checksum(f.Type, uint16(len(f.Payload)+ChecksumSize), f.Payload)
}

// Checksum computes the 16-bit frame checksum: packet type plus the length
// field plus every payload byte, modulo 65536.
func Checksum(t PacketType, length uint16, payload []byte) uint16 {
	sum := uint16(t) + length
	for _, b := range payload {
		sum += uint16(b)
	}
	return sum
}

// Encode builds a complete wire frame around the payload.
//
// Frame structure (all fields big-endian):
//
//	[MARKER(2)][ADDRESS(4)][TYPE(1)][LENGTH(2)][PAYLOAD...][CHECKSUM(2)]
//
// LENGTH counts the payload plus the trailing checksum. Encode is total
// over well-formed inputs and never fails.
func Encode(t PacketType, addr uint32, payload []byte) []byte {
	length := uint16(len(payload) + ChecksumSize)
	frame := make([]byte, FrameOverhead+len(payload))

	binary.BigEndian.PutUint16(frame[0:2], StartMarker)
	binary.BigEndian.PutUint32(frame[2:6], addr)
	frame[6] = byte(t)
	binary.BigEndian.PutUint16(frame[7:9], length)
	copy(frame[HeaderSize:], payload)
	binary.BigEndian.PutUint16(frame[len(frame)-ChecksumSize:], Checksum(t, length, payload))

	return frame
}

// ReadFrame reads exactly one frame from r, validating the start marker
// and the device address against addr. A short read at any point is a
// TruncatedError wrapping the underlying cause, which on a serial port
// with a read timeout is how a sensor that stopped talking surfaces.
func ReadFrame(r io.Reader, addr uint32) (*Frame, error) {
	var header [HeaderSize]byte

	if _, err := io.ReadFull(r, header[0:2]); err != nil {
		return nil, &TruncatedError{Field: "start marker", Err: err}
	}
	marker := binary.BigEndian.Uint16(header[0:2])
	if marker != StartMarker {
		return nil, &BadMarkerError{Got: marker}
	}

	if _, err := io.ReadFull(r, header[2:6]); err != nil {
		return nil, &TruncatedError{Field: "address", Err: err}
	}
	got := binary.BigEndian.Uint32(header[2:6])
	if got != addr {
		return nil, &BadAddressError{Got: got, Want: addr}
	}

	if _, err := io.ReadFull(r, header[6:9]); err != nil {
		return nil, &TruncatedError{Field: "type and length", Err: err}
	}
	length := binary.BigEndian.Uint16(header[7:9])
	if length < ChecksumSize {
		return nil, fmt.Errorf("invalid declared length %d: minimum is %d", length, ChecksumSize)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, &TruncatedError{Field: "payload", Err: err}
	}

	return &Frame{
		Type:     PacketType(header[6]),
		Address:  got,
		Payload:  body[:length-ChecksumSize],
		Checksum: binary.BigEndian.Uint16(body[length-ChecksumSize:]),
	}, nil
}
