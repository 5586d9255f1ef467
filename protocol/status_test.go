package protocol

import (
	"strings"
	"testing"
)

func TestStatusRecoverable(t *testing.T) {
	tests := []struct {
		status      StatusCode
		recoverable bool
	}{
		{StatusOK, false},
		{StatusPacketReceiveErr, false},
		{StatusNoFinger, true},
		{StatusImageFail, true},
		{StatusImageMess, false},
		{StatusFeatureFail, false},
		{StatusNoMatch, false},
		{StatusInvalidImage, false},
		{StatusCode(0x42), false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Recoverable(); got != tt.recoverable {
				t.Errorf("Recoverable(0x%02X) = %v, want %v", byte(tt.status), got, tt.recoverable)
			}
		})
	}
}

func TestStatusStringUnknown(t *testing.T) {
	s := StatusCode(0x99).String()
	if !strings.Contains(s, "0x99") {
		t.Errorf("String() = %q, want the raw code included", s)
	}
}
