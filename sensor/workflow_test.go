package sensor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/veldtec/go-r307/protocol"
	"github.com/veldtec/go-r307/template"
)

func TestCaptureTemplateWorkflow(t *testing.T) {
	fake := newFakeSensor()
	fake.failCaptures = 2 // finger lands on the third attempt

	var phases []string
	dev := NewDevice(fake,
		WithMaxAttempts(5),
		WithRetryDelay(0),
		WithProgressCallback(func(p Progress) {
			phases = append(phases, p.Phase)
		}),
	)

	tpl, err := dev.CaptureTemplate(context.Background())
	if err != nil {
		t.Fatalf("CaptureTemplate() error = %v", err)
	}
	if len(tpl) != template.Size {
		t.Errorf("template length = %d, want %d", len(tpl), template.Size)
	}
	if !bytes.Equal(tpl, fake.live) {
		t.Error("captured template differs from the sensor's character buffer")
	}
	if fake.genImgCalls != 3 {
		t.Errorf("capture attempts = %d, want 3", fake.genImgCalls)
	}

	want := []string{PhaseCapturing, PhaseConverting, PhaseUploading, PhaseDone}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %q, want %q", i, phases[i], want[i])
		}
	}
}

func TestCaptureTemplateExhaustsAttempts(t *testing.T) {
	fake := newFakeSensor()
	fake.failCaptures = 100

	dev := NewDevice(fake, WithMaxAttempts(5), WithRetryDelay(0))

	_, err := dev.CaptureTemplate(context.Background())

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error = %v, want ExhaustedError", err)
	}
	if fake.genImgCalls != 5 {
		t.Errorf("capture attempts = %d, want exactly 5", fake.genImgCalls)
	}
}

func TestCaptureTemplateTerminalStatusFailsImmediately(t *testing.T) {
	fake := newFakeSensor()
	fake.captureStatus = protocol.StatusImageMess

	dev := NewDevice(fake, WithMaxAttempts(5), WithRetryDelay(0))

	_, err := dev.CaptureTemplate(context.Background())

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if se.Status != protocol.StatusImageMess {
		t.Errorf("Status = %v, want image too messy", se.Status)
	}
	if fake.genImgCalls != 1 {
		t.Errorf("capture attempts = %d, want 1 (terminal statuses are not retried)", fake.genImgCalls)
	}
}

func TestMatchTemplateMatched(t *testing.T) {
	fake := newFakeSensor()
	stored := append([]byte(nil), fake.live...) // same finger as the live capture

	dev := NewDevice(fake, WithRetryDelay(0))

	outcome, err := dev.MatchTemplate(context.Background(), stored)
	if err != nil {
		t.Fatalf("MatchTemplate() error = %v", err)
	}
	if !outcome.Matched {
		t.Fatal("Matched = false, want true")
	}
	if outcome.Confidence != fake.score {
		t.Errorf("Confidence = %d, want %d", outcome.Confidence, fake.score)
	}
}

func TestMatchTemplateNotMatched(t *testing.T) {
	fake := newFakeSensor()
	stored := bytes.Repeat([]byte{0x99}, template.Size) // some other finger

	dev := NewDevice(fake, WithRetryDelay(0))

	outcome, err := dev.MatchTemplate(context.Background(), stored)
	if err != nil {
		t.Fatalf("MatchTemplate() error = %v", err)
	}
	if outcome.Matched {
		t.Error("Matched = true, want false")
	}
	if outcome.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0 on a non-match", outcome.Confidence)
	}
}

// The stored operand must land in buffer 1 and the live capture in buffer
// 2; reusing one slot would make the sensor compare a template to itself.
func TestMatchTemplateSlotSeparation(t *testing.T) {
	fake := newFakeSensor()

	dev := NewDevice(fake, WithRetryDelay(0))
	if _, err := dev.MatchTemplate(context.Background(), fake.live); err != nil {
		t.Fatalf("MatchTemplate() error = %v", err)
	}

	if fake.downSlot != CharBuffer1 {
		t.Errorf("stored template went to slot %d, want slot 1", fake.downSlot)
	}
	if len(fake.convertSlots) != 1 || fake.convertSlots[0] != CharBuffer2 {
		t.Errorf("live conversion slots = %v, want [2]", fake.convertSlots)
	}
}

func TestMatchTemplateEmptyStoredRejected(t *testing.T) {
	dev := NewDevice(newFakeSensor(), WithRetryDelay(0))

	if _, err := dev.MatchTemplate(context.Background(), nil); err == nil {
		t.Error("MatchTemplate() accepted an empty stored template, want error")
	}
}

func TestMatchTemplatePhases(t *testing.T) {
	fake := newFakeSensor()

	var phases []string
	dev := NewDevice(fake,
		WithRetryDelay(0),
		WithProgressCallback(func(p Progress) {
			phases = append(phases, p.Phase)
		}),
	)

	if _, err := dev.MatchTemplate(context.Background(), fake.live); err != nil {
		t.Fatalf("MatchTemplate() error = %v", err)
	}

	want := []string{PhaseLoadingStored, PhaseCapturing, PhaseConverting, PhaseMatching, PhaseDone}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %q, want %q", i, phases[i], want[i])
		}
	}
}

func TestDeviceCloseReleasesTransport(t *testing.T) {
	fake := newFakeSensor()
	dev := NewDevice(fake)

	if err := dev.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !fake.closed {
		t.Error("underlying transport was not closed")
	}
}

func TestNewDevicePanicsOnNilConn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewDevice(nil) did not panic")
		}
	}()
	NewDevice(nil)
}
