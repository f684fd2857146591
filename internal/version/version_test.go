package version

import (
	"strings"
	"testing"
)

func TestBuildNumber(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch", date: "2026-03-01", expected: 0},
		{name: "next day", date: "2026-03-02", expected: 1},
		{name: "one year later", date: "2027-03-01", expected: 365},
		{name: "across leap day", date: "2028-03-01", expected: 731},
		{name: "invalid format", date: "01.03.2026", wantError: true},
		{name: "empty", date: "", wantError: true},
		{name: "before epoch", date: "2026-02-28", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildNumber(tt.date)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("BuildNumber(%q) = %d, want %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = ""
	if info := Info(); info.Error == "" || info.Protocol != Protocol {
		t.Errorf("dev build info = %+v", info)
	}
	if s := String(); !strings.Contains(s, "dev build") {
		t.Errorf("String() = %q", s)
	}

	BuildDate = "2026-03-11"
	if info := Info(); info.Build != 10 || info.Error != "" {
		t.Errorf("info = %+v", info)
	}
	if s := String(); !strings.Contains(s, "build 10") {
		t.Errorf("String() = %q", s)
	}
}
