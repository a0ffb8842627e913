package telemetry

import (
	"strings"
	"testing"
)

func TestConfigSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 0, want: "root:AlwaysOnSampler"},
		{ratio: 1, want: "root:AlwaysOnSampler"},
		{ratio: 0.25, want: "root:TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		got := Config{SampleRatio: tt.ratio}.sampler().Description()
		if !strings.HasPrefix(got, "ParentBased{") {
			t.Fatalf("ratio %v: expected a parent-based sampler, got %q", tt.ratio, got)
		}
		if !strings.Contains(got, tt.want) {
			t.Fatalf("ratio %v: %q does not contain %q", tt.ratio, got, tt.want)
		}
	}
}
