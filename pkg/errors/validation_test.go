package errors

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "1b4e28ba-2fa1-11d2-883f-0016d3cca427", false},
		{"short", "cb-1", false},
		{"unicode", "überschrift", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"space", "cb 1", true},
		{"tab", "cb\t1", true},
		{"null byte", "cb\x001", true},
		{"newline", "cb\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Weekly", false},
		{"inner spaces", "Daily planner left", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"leading space", " Weekly", true},
		{"trailing space", "Weekly ", true},
		{"control char", "Week\x01ly", true},
		{"too long", strings.Repeat("n", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "templates/planner.json", false},
		{"absolute", "/home/user/planner.json", false},
		{"dotted", "../shared/planner.json", false},

		{"empty", "", true},
		{"null byte", "planner\x00.json", true},
		{"control char", "planner\x1b.json", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDeviceName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"remarkable-2", false},
		{"a4", false},
		{"kindle-scribe", false},

		{"", true},
		{"Remarkable", true},
		{"-leading", true},
		{"has space", true},
		{"under_score", true},
		{strings.Repeat("x", 65), true},
	}

	for _, tt := range tests {
		err := ValidateDeviceName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDeviceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidDevice) {
			t.Errorf("ValidateDeviceName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidDevice)
		}
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		page, count int
		wantErr     bool
	}{
		{1, 10, false},
		{10, 10, false},
		{5, 0, false},

		{0, 10, true},
		{-1, 0, true},
		{11, 10, true},
	}

	for _, tt := range tests {
		err := ValidatePage(tt.page, tt.count)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePage(%d, %d) error = %v, wantErr %v", tt.page, tt.count, err, tt.wantErr)
		}
	}
}
