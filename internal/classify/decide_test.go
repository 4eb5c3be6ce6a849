package classify

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		want   Decision
	}{
		{"nothing found", Counts{}, NoCandidates},
		{"only unmodified", Counts{Unmodified: 3}, ProcessUnmodified},
		{"only modified", Counts{Modified: 2}, NeedReprocessChoice},
		{"mixed", Counts{Unmodified: 1, Modified: 1}, NeedMixedChoice},
		{"single unmodified", Counts{Unmodified: 1}, ProcessUnmodified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.counts); got != tt.want {
				t.Errorf("Decide(%+v) = %v, want %v", tt.counts, got, tt.want)
			}
		})
	}
}
