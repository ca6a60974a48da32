package errors

import (
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "api", false},
		{"dashes and dots", "svc-1.db", false},
		{"colon", "ns:node", false},
		{"unicode", "nœud", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"reserved prefix", "sp-marker-arrow", true},
		{"space", "a b", true},
		{"tab", "a\tb", true},
		{"hash", "a#b", true},
		{"quote", `a"b`, true},
		{"paren", "url(x)", true},
		{"angle", "<g>", true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScene) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidScene)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	valid := map[string]bool{"svg": true, "png": true}

	if err := ValidateFormat("svg", valid); err != nil {
		t.Errorf("ValidateFormat(svg) = %v, want nil", err)
	}

	err := ValidateFormat("gif", valid)
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("ValidateFormat(gif) = %v, want INVALID_FORMAT", err)
	}
	if UserMessage(err) != `invalid format "gif" (supported: png, svg)` {
		t.Errorf("message = %q", UserMessage(err))
	}
}
