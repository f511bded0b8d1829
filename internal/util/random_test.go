package util

import (
	"strings"
	"testing"
)

func TestGenerateRandomID(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		hexLength  int
		wantPrefix string
		wantLength int // expected total length: prefix + hexLength
	}{
		{
			name:       "action ID format",
			prefix:     "a_",
			hexLength:  32,
			wantPrefix: "a_",
			wantLength: 34, // 2 + 32
		},
		{
			name:       "interaction ID format",
			prefix:     "i_",
			hexLength:  32,
			wantPrefix: "i_",
			wantLength: 34, // 2 + 32
		},
		{
			name:       "custom prefix",
			prefix:     "test_",
			hexLength:  16,
			wantPrefix: "test_",
			wantLength: 21, // 5 + 16
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateRandomID(tt.prefix, tt.hexLength)

			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("GenerateRandomID() = %v, want prefix %v", got, tt.wantPrefix)
			}

			if len(got) != tt.wantLength {
				t.Errorf("GenerateRandomID() length = %v, want %v", len(got), tt.wantLength)
			}

			// Check that the hex part is valid
			hexPart := got[len(tt.wantPrefix):]
			if !isValidHex(hexPart) {
				t.Errorf("GenerateRandomID() hex part = %v is not valid hex", hexPart)
			}
		})
	}
}

func TestGenerateRandomHex(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"zero length", 0, 0},
		{"negative length", -1, 0},
		{"small length", 8, 8},
		{"medium length", 16, 16},
		{"large length", 64, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateRandomHex(tt.length)

			if len(got) != tt.want {
				t.Errorf("GenerateRandomHex() length = %v, want %v", len(got), tt.want)
			}

			if tt.want > 0 && !isValidHex(got) {
				t.Errorf("GenerateRandomHex() = %v is not valid hex", got)
			}
		})
	}
}

func TestGenerateActionID(t *testing.T) {
	got := GenerateActionID()

	if !strings.HasPrefix(got, "a_") {
		t.Errorf("GenerateActionID() = %v, want prefix a_", got)
	}

	if len(got) != 34 { // "a_" + 32 hex chars
		t.Errorf("GenerateActionID() length = %v, want 34", len(got))
	}

	if !isValidHex(got[2:]) {
		t.Errorf("GenerateActionID() hex part = %v is not valid hex", got[2:])
	}
}

func TestGenerateInteractionID(t *testing.T) {
	got := GenerateInteractionID()

	if !strings.HasPrefix(got, "i_") {
		t.Errorf("GenerateInteractionID() = %v, want prefix i_", got)
	}

	if len(got) != 34 { // "i_" + 32 hex chars
		t.Errorf("GenerateInteractionID() length = %v, want 34", len(got))
	}
}

func TestRandomIDUniqueness(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]bool)

	for i := 0; i < iterations; i++ {
		id := GenerateRandomID("test_", 16)
		if seen[id] {
			t.Errorf("GenerateRandomID() generated duplicate: %v", id)
		}
		seen[id] = true
	}
}

// Helper function to validate hex strings
func isValidHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
