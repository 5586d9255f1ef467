package protocol

import "fmt"

// Frame structure constants per the R307/AS608 UART datasheet.
const (
	// StartMarker is the fixed 2-byte frame header (0xEF01)
	StartMarker = 0xEF01

	// DefaultAddress is the broadcast device address programmed into
	// modules at the factory
	DefaultAddress = 0xFFFFFFFF

	// HeaderSize is the size of the frame header in bytes:
	// MARKER(2) + ADDRESS(4) + TYPE(1) + LENGTH(2)
	HeaderSize = 9

	// ChecksumSize is the size of the trailing checksum in bytes.
	// The length field counts the checksum, so the smallest legal
	// length value is ChecksumSize.
	ChecksumSize = 2

	// FrameOverhead is the wire size of a frame with an empty payload
	FrameOverhead = HeaderSize + ChecksumSize

	// MaxPayloadSize is the largest payload a single frame may carry
	MaxPayloadSize = 256
)

// PacketType identifies the role of a frame on the wire.
type PacketType byte

// Packet types per datasheet section "Data package format".
const (
	// PacketCommand carries a command code plus its arguments, host to sensor
	PacketCommand PacketType = 0x01

	// PacketData carries one chunk of a multi-frame transfer
	PacketData PacketType = 0x02

	// PacketAck is the sensor's acknowledgement; first payload byte is
	// the confirmation status
	PacketAck PacketType = 0x07

	// PacketEndData is the final chunk of a multi-frame transfer
	PacketEndData PacketType = 0x08
)

// String returns the datasheet name for the packet type.
func (t PacketType) String() string {
	switch t {
	case PacketCommand:
		return "command"
	case PacketData:
		return "data"
	case PacketAck:
		return "ack"
	case PacketEndData:
		return "end-of-data"
	default:
		return fmt.Sprintf("packet type 0x%02X", byte(t))
	}
}

// Command is an instruction code carried in the first payload byte of a
// command frame.
type Command byte

// Command codes per datasheet section "System commands".
const (
	// CmdGenImg scans the finger and stores the image in the image buffer
	CmdGenImg Command = 0x01

	// CmdImg2Tz generates a character file from the image buffer into the
	// given character buffer
	CmdImg2Tz Command = 0x02

	// CmdMatch compares the two character buffers and reports a score
	CmdMatch Command = 0x03

	// CmdUpChar streams a character buffer to the host
	CmdUpChar Command = 0x08

	// CmdDownChar streams a template from the host into a character buffer
	CmdDownChar Command = 0x09

	// CmdTemplateCount reads the number of templates stored in the
	// sensor's flash library
	CmdTemplateCount Command = 0x1D
)
