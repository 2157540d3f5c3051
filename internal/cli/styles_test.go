package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagGlyph(t *testing.T) {
	assert.Contains(t, FlagGlyph(true), SuccessIcon)
	assert.Contains(t, FlagGlyph(false), ErrorIcon)
	assert.NotEqual(t, FlagGlyph(true), FlagGlyph(false))
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name    string
		format  func(string) string
		icon    string
		message string
	}{
		{"success", FormatSuccess, SuccessIcon, "scan complete"},
		{"error", FormatError, ErrorIcon, "scan failed"},
		{"warning", FormatWarning, WarningIcon, "check the label"},
		{"info", FormatInfo, InfoIcon, "3 images found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format(tt.message)
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, tt.message)
		})
	}
}

func TestFormatTitle(t *testing.T) {
	out := FormatTitle("Scan Results")
	assert.Contains(t, out, LeafIcon)
	assert.Contains(t, out, "Scan Results")
}

func TestRenderBox(t *testing.T) {
	out := RenderBox("Verdict", "all clear")
	assert.Contains(t, out, "Verdict")
	assert.Contains(t, out, "all clear")
}
