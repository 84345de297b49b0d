package display

import (
	"strings"
	"testing"
)

func TestCheckInputCount(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		threshold int
		limit     uint64
		haveLimit bool
		wantWarn  bool
	}{
		{name: "few inputs", count: 3, threshold: 100, limit: 1024, haveLimit: true, wantWarn: false},
		{name: "at threshold", count: 100, threshold: 100, limit: 1024, haveLimit: true, wantWarn: false},
		{name: "above threshold", count: 101, threshold: 100, limit: 1024, haveLimit: true, wantWarn: true},
		{name: "above threshold unknown limit", count: 101, threshold: 100, wantWarn: true},
		{name: "near limit below threshold", count: 50, threshold: 100, limit: 64, haveLimit: true, wantWarn: true},
		{name: "just under limit headroom", count: 47, threshold: 100, limit: 64, haveLimit: true, wantWarn: false},
		{name: "threshold disabled", count: 5000, threshold: 0, limit: 65536, haveLimit: true, wantWarn: false},
		{name: "threshold disabled near limit", count: 5000, threshold: 0, limit: 4096, haveLimit: true, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, warn := CheckInputCount(tt.count, tt.threshold, tt.limit, tt.haveLimit)
			if warn != tt.wantWarn {
				t.Fatalf("CheckInputCount() warn = %v, want %v", warn, tt.wantWarn)
			}
			if warn && !strings.Contains(w.Message, "Processing") {
				t.Errorf("unexpected warning message %q", w.Message)
			}
		})
	}
}

func TestOpenFileLimit(t *testing.T) {
	limit, ok := OpenFileLimit()
	if ok && limit == 0 {
		t.Error("a known limit should be positive")
	}
}
