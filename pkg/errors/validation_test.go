package errors

import (
	"strings"
	"testing"
)

func TestValidateRoot(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"RelativePath", "./docs", false},
		{"AbsolutePath", "/home/user/repo", false},
		{"WindowsStylePath", `C:\repo\docs`, false},
		{"Empty", "", true},
		{"NullByte", "docs\x00evil", true},
		{"ControlCharacter", "docs\x07", true},
		{"TooLong", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoot(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoot(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRoot) {
				t.Errorf("ValidateRoot error should carry %s, got %v", ErrCodeInvalidRoot, err)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("svg", "dot", "svg", "png"); err != nil {
		t.Errorf("svg should be allowed: %v", err)
	}

	err := ValidateFormat("yaml", "dot", "svg", "png")
	if err == nil {
		t.Fatal("yaml should be rejected")
	}
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("error should carry %s, got %v", ErrCodeInvalidFormat, err)
	}
	if !strings.Contains(err.Error(), "dot, svg, png") {
		t.Errorf("error should list allowed formats, got %q", err.Error())
	}
}

func TestValidateExcludeName(t *testing.T) {
	tests := []struct {
		name    string
		exclude string
		wantErr bool
	}{
		{"PlainName", "node_modules", false},
		{"DotPrefixed", ".git", false},
		{"Empty", "", true},
		{"ForwardSlash", "src/vendor", true},
		{"Backslash", `src\vendor`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExcludeName(tt.exclude)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExcludeName(%q) error = %v, wantErr %v", tt.exclude, err, tt.wantErr)
			}
		})
	}
}
