package sensor

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/veldtec/go-r307/protocol"
)

// scriptConn is a transport double with pre-queued response bytes. Frames
// the device writes are recorded for inspection.
type scriptConn struct {
	in       bytes.Buffer
	out      bytes.Buffer
	writeErr error
}

func (c *scriptConn) Read(p []byte) (int, error) {
	return c.in.Read(p)
}

func (c *scriptConn) Write(p []byte) (int, error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	return c.out.Write(p)
}

func (c *scriptConn) queue(raw []byte) {
	c.in.Write(raw)
}

func (c *scriptConn) queueAck(status protocol.StatusCode, extra ...byte) {
	payload := append([]byte{byte(status)}, extra...)
	c.queue(protocol.Encode(protocol.PacketAck, protocol.DefaultAddress, payload))
}

func (c *scriptConn) queueFrame(t protocol.PacketType, payload []byte) {
	c.queue(protocol.Encode(t, protocol.DefaultAddress, payload))
}

// writtenFrames decodes everything the device wrote so far.
func (c *scriptConn) writtenFrames(t *testing.T) []*protocol.Frame {
	t.Helper()
	var frames []*protocol.Frame
	r := bytes.NewReader(c.out.Bytes())
	for r.Len() > 0 {
		f, err := protocol.ReadFrame(r, protocol.DefaultAddress)
		if err != nil {
			t.Fatalf("device wrote an unparseable frame: %v", err)
		}
		frames = append(frames, f)
	}
	return frames
}

// fakeSensor is a behavioral double: it parses command frames like the
// real module and answers with proper frames, including template slot
// storage and on-device matching by byte equality.
type fakeSensor struct {
	addr uint32
	out  bytes.Buffer

	slots map[BufferSlot][]byte
	live  []byte // template a conversion of the live finger produces

	failCaptures  int                 // NoFinger answers before a capture succeeds
	captureStatus protocol.StatusCode // non-OK forces this answer on every capture
	score         uint16
	templateCount uint16

	genImgCalls  int
	convertSlots []BufferSlot
	downSlot     BufferSlot
	receiving    bool
	received     []byte
	closed       bool
}

func newFakeSensor() *fakeSensor {
	live := make([]byte, 512)
	for i := range live {
		live[i] = byte(i * 7)
	}
	return &fakeSensor{
		addr:  protocol.DefaultAddress,
		slots: make(map[BufferSlot][]byte),
		live:  live,
		score: 180,
	}
}

func (f *fakeSensor) Read(p []byte) (int, error) {
	return f.out.Read(p)
}

func (f *fakeSensor) Write(p []byte) (int, error) {
	frame, err := protocol.ReadFrame(bytes.NewReader(p), f.addr)
	if err != nil {
		return 0, fmt.Errorf("fake sensor received garbage: %v", err)
	}

	switch frame.Type {
	case protocol.PacketCommand:
		f.handleCommand(frame.Payload)
	case protocol.PacketData:
		if f.receiving {
			f.received = append(f.received, frame.Payload...)
		}
	case protocol.PacketEndData:
		if f.receiving {
			f.received = append(f.received, frame.Payload...)
			f.slots[f.downSlot] = append([]byte(nil), f.received...)
			f.receiving = false
			f.received = nil
		}
	}
	return len(p), nil
}

func (f *fakeSensor) Close() error {
	f.closed = true
	return nil
}

func (f *fakeSensor) handleCommand(payload []byte) {
	switch protocol.Command(payload[0]) {
	case protocol.CmdGenImg:
		f.genImgCalls++
		switch {
		case f.captureStatus != protocol.StatusOK:
			f.ack(f.captureStatus)
		case f.genImgCalls <= f.failCaptures:
			f.ack(protocol.StatusNoFinger)
		default:
			f.ack(protocol.StatusOK)
		}

	case protocol.CmdImg2Tz:
		slot := BufferSlot(payload[1])
		f.convertSlots = append(f.convertSlots, slot)
		f.slots[slot] = append([]byte(nil), f.live...)
		f.ack(protocol.StatusOK)

	case protocol.CmdMatch:
		a, b := f.slots[CharBuffer1], f.slots[CharBuffer2]
		if len(a) > 0 && bytes.Equal(a, b) {
			f.ack(protocol.StatusOK, byte(f.score>>8), byte(f.score))
		} else {
			f.ack(protocol.StatusNoMatch, 0x00, 0x00)
		}

	case protocol.CmdUpChar:
		data := f.slots[BufferSlot(payload[1])]
		f.ack(protocol.StatusOK)
		for len(data) > 128 {
			f.emit(protocol.PacketData, data[:128])
			data = data[128:]
		}
		f.emit(protocol.PacketEndData, data)

	case protocol.CmdDownChar:
		f.downSlot = BufferSlot(payload[1])
		f.receiving = true
		f.received = nil
		f.ack(protocol.StatusOK)

	case protocol.CmdTemplateCount:
		f.ack(protocol.StatusOK, byte(f.templateCount>>8), byte(f.templateCount))

	default:
		f.ack(protocol.StatusPacketReceiveErr)
	}
}

func (f *fakeSensor) ack(status protocol.StatusCode, extra ...byte) {
	f.emit(protocol.PacketAck, append([]byte{byte(status)}, extra...))
}

func (f *fakeSensor) emit(t protocol.PacketType, payload []byte) {
	f.out.Write(protocol.Encode(t, f.addr, payload))
}
