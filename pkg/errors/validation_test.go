package errors

import (
	"strings"
	"testing"
)

func TestValidateCategoryKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "flows", false},
		{"underscore", "custom_tabs", false},
		{"digits", "v2", false},

		{"empty", "", true},
		{"reserved", "root", true},
		{"uppercase", "Flows", true},
		{"dash", "perm-sets", true},
		{"leading underscore", "_x", true},
		{"space", "apex classes", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategoryKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCategoryKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("ValidateCategoryKey(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"plain", "Acme Corp", false},
		{"multi-line", "Flows\n(3)", false},
		{"unicode", "Société Générale", false},

		{"null byte", "foo\x00bar", true},
		{"carriage return", "foo\rbar", true},
		{"tab", "foo\tbar", true},
		{"too long", strings.Repeat("x", maxLabelLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/metadata.json", false},
		{"http", "http://localhost:3000/api/metadata", false},

		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"no scheme", "example.com", true},
		{"javascript", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSnapshotID(t *testing.T) {
	if err := ValidateSnapshotID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); err != nil {
		t.Errorf("valid uuid rejected: %v", err)
	}
	for _, bad := range []string{"", "not-a-uuid", "../../etc"} {
		if err := ValidateSnapshotID(bad); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateSnapshotID(%q) = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeValidation,
		ErrCodeLayout,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidEngine,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
