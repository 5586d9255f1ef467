package sensor

import (
	"context"
	"fmt"

	"github.com/veldtec/go-r307/protocol"
	"github.com/veldtec/go-r307/template"
)

// UploadTemplate streams the template in the given buffer slot from the
// sensor to the host. After the upload command is acknowledged, the sensor
// sends any number of data frames followed by exactly one end-of-data
// frame. Any other frame type mid-stream aborts the whole transfer: the
// sensor's framing state is unknown from that point and partial template
// bytes are worthless.
//
// The returned template is normalized to exactly template.Size bytes.
func (d *Device) UploadTemplate(ctx context.Context, slot BufferSlot) (template.Template, error) {
	if _, err := d.execute(ctx, "upload template", []byte{byte(protocol.CmdUpChar), byte(slot)}); err != nil {
		return nil, err
	}

	var buf []byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("upload template: cancelled: %w", err)
		}

		frame, err := d.readFrame()
		if err != nil {
			return nil, fmt.Errorf("upload template: %w", err)
		}

		switch frame.Type {
		case protocol.PacketData:
			buf = append(buf, frame.Payload...)
		case protocol.PacketEndData:
			buf = append(buf, frame.Payload...)
			d.logDebug("template received", "bytes", len(buf), "slot", byte(slot))
			return template.Normalize(buf), nil
		default:
			return nil, &ProtocolViolationError{Op: "upload template", Got: frame.Type}
		}
	}
}

// DownloadTemplate streams a template from the host into the given buffer
// slot. The input is normalized to template.Size bytes first, then sent in
// fixed-size chunks: every full chunk as a data frame and the remainder as
// the single end-of-data frame. The sensor keys on the end-of-data marker,
// not a byte count, to know the stream terminated, so that final frame is
// sent even when the remainder is empty.
func (d *Device) DownloadTemplate(ctx context.Context, slot BufferSlot, raw []byte) error {
	tpl := template.Normalize(raw)

	if _, err := d.execute(ctx, "download template", []byte{byte(protocol.CmdDownChar), byte(slot)}); err != nil {
		return err
	}

	full, final := splitChunks(tpl, d.cfg.ChunkSize)
	for _, chunk := range full {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("download template: cancelled: %w", err)
		}
		if err := d.writeFrame(protocol.PacketData, chunk); err != nil {
			return fmt.Errorf("download template: %w", err)
		}
	}
	if err := d.writeFrame(protocol.PacketEndData, final); err != nil {
		return fmt.Errorf("download template: %w", err)
	}

	d.logDebug("template sent", "bytes", len(tpl), "slot", byte(slot))
	return nil
}

// splitChunks splits data into full transfer chunks plus the final
// remainder. The remainder may be empty when data divides evenly; it is
// still sent, as the end-of-data frame.
func splitChunks(data []byte, size int) (full [][]byte, final []byte) {
	for len(data) >= size {
		full = append(full, data[:size])
		data = data[size:]
	}
	return full, data
}
