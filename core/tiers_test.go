package core

import "testing"

func TestTierForTag(t *testing.T) {
	tests := []struct {
		tag  string
		want BoosterTier
	}{
		{"gold", TierTop},
		{"top-ad", TierTop},
		{"silver", TierMid},
		{"premium", TierMid},
		{"bronze", TierLow},
		{"boost", TierLow},
		{"unknown", TierNone},
		{"", TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := TierForTag(tt.tag); got != tt.want {
				t.Errorf("TierForTag(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestTierForTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want BoosterTier
	}{
		{"no tags", nil, TierNone},
		{"single low", []string{"bronze"}, TierLow},
		{"highest wins, not summed", []string{"bronze", "gold", "silver"}, TierTop},
		{"mixed schemes", []string{"boost", "premium"}, TierMid},
		{"unknown tags ignored", []string{"featured", "urgent"}, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierForTags(tt.tags); got != tt.want {
				t.Errorf("TierForTags(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}
