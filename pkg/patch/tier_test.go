package patch

import "testing"

func TestParseTier(t *testing.T) {
	tests := []struct {
		input    string
		expected Tier
		wantErr  bool
	}{
		{"base", TierBase, false},
		{"extended", TierExtended, false},
		{"extended21", TierExtended21, false},
		{"Extended21", TierExtended21, false},
		{"BASE", TierBase, false},
		{"vanilla", TierBase, true},
		{"", TierBase, true},
	}

	for i, tt := range tests {
		got, err := ParseTier(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("tests[%d] - expected error for %q", i, tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if got != tt.expected {
			t.Fatalf("tests[%d] - tier wrong. expected=%v, got=%v", i, tt.expected, got)
		}
	}
}

func TestTierOrdering(t *testing.T) {
	if !(TierBase < TierExtended && TierExtended < TierExtended21) {
		t.Fatalf("tier ordering broken")
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier     Tier
		expected string
	}{
		{TierBase, "base"},
		{TierExtended, "extended"},
		{TierExtended21, "extended21"},
		{Tier(9), "tier(9)"},
	}

	for i, tt := range tests {
		if got := tt.tier.String(); got != tt.expected {
			t.Fatalf("tests[%d] - String() wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}
