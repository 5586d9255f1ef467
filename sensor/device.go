package sensor

import (
	"fmt"
	"io"

	"go.bug.st/serial"

	"github.com/veldtec/go-r307/protocol"
)

// BufferSlot designates one of the sensor's on-device character buffers.
// A slot holds exactly one template at a time. The match workflow keeps
// the stored operand in CharBuffer1 and the live capture in CharBuffer2;
// the device itself does not enforce this separation, the typed constants
// and the workflows do.
type BufferSlot byte

const (
	// CharBuffer1 is the first character buffer
	CharBuffer1 BufferSlot = 1

	// CharBuffer2 is the second character buffer
	CharBuffer2 BufferSlot = 2
)

// Device owns one exclusive connection to an R307/AS608 fingerprint
// sensor and exposes the command, transfer and workflow layers on top of
// it. The sensor is half-duplex with no frame IDs, so a Device admits one
// in-flight transaction at a time; callers must not share one Device
// across concurrent workflows.
type Device struct {
	conn io.ReadWriter
	cfg  Config
}

// Open opens the serial port and returns a Device using the sensor's
// standard line settings: 8 data bits, no parity, 1 stop bit, and the
// configured baud rate (57600 by default).
//
// Example:
//
//	dev, err := sensor.Open("/dev/ttyUSB0")
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
func Open(portName string, opts ...Option) (*Device, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", portName, err)
	}

	return &Device{
		conn: &timeoutConn{rw: port},
		cfg:  cfg,
	}, nil
}

// NewDevice creates a Device over an already-open transport. Useful for
// tests and for exotic transports (TCP serial bridges, fakes).
//
// Example:
//
//	dev := sensor.NewDevice(conn, sensor.WithMaxAttempts(10))
func NewDevice(conn io.ReadWriter, opts ...Option) *Device {
	if conn == nil {
		panic("conn cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Device{
		conn: conn,
		cfg:  cfg,
	}
}

// Close releases the underlying transport if it is closeable. Safe to call
// on every exit path.
func (d *Device) Close() error {
	if c, ok := d.conn.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// writeFrame encodes and writes one frame.
func (d *Device) writeFrame(t protocol.PacketType, payload []byte) error {
	if _, err := d.conn.Write(protocol.Encode(t, d.cfg.Address, payload)); err != nil {
		return fmt.Errorf("write %s frame: %w", t, err)
	}
	return nil
}

// readFrame reads one frame, bounded by the transport's read timeout.
func (d *Device) readFrame() (*protocol.Frame, error) {
	return protocol.ReadFrame(d.conn, d.cfg.Address)
}

// timeoutConn adapts the go.bug.st/serial timeout convention: a read that
// returns (0, nil) means the deadline elapsed with no data. Left alone it
// would make io.ReadFull spin; here it becomes ErrTimeout.
type timeoutConn struct {
	rw io.ReadWriter
}

func (c *timeoutConn) Read(p []byte) (int, error) {
	n, err := c.rw.Read(p)
	if n == 0 && err == nil {
		return 0, ErrTimeout
	}
	return n, err
}

func (c *timeoutConn) Write(p []byte) (int, error) {
	return c.rw.Write(p)
}

func (c *timeoutConn) Close() error {
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// reportProgress calls the progress callback if configured.
func (d *Device) reportProgress(p Progress) {
	if d.cfg.ProgressCallback != nil {
		d.cfg.ProgressCallback(p)
	}
}

// logDebug logs a debug message if a logger is configured.
func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.cfg.Logger != nil {
		d.cfg.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Device) logInfo(msg string, keysAndValues ...interface{}) {
	if d.cfg.Logger != nil {
		d.cfg.Logger.Info(msg, keysAndValues...)
	}
}
