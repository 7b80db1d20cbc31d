package components

import (
	"testing"

	"github.com/abhisek/questmap/internal/tier"
)

func TestTierBarSegments(t *testing.T) {
	tests := []struct {
		name   string
		counts map[tier.Tier]int
		width  int
		want   []int
	}{
		{"empty", nil, 10, []int{0, 0, 0, 0, 0}},
		{"even", map[tier.Tier]int{tier.Tier1: 1, tier.Tier4: 1}, 10, []int{0, 5, 0, 0, 5}},
		{"rounding", map[tier.Tier]int{tier.Baseline: 1, tier.Tier1: 1, tier.Tier2: 1}, 10, []int{4, 3, 3, 0, 0}},
		{"tiny share still visible", map[tier.Tier]int{tier.Tier1: 99, tier.Tier3: 1}, 10, []int{0, 9, 0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewTierBar(tier.DefaultPalette(), tt.counts, tt.width)
			got := bar.Segments(tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("Segments() = %v, want %v", got, tt.want)
			}
			sum := 0
			for i := range got {
				sum += got[i]
				if got[i] != tt.want[i] {
					t.Errorf("Segments() = %v, want %v", got, tt.want)
					break
				}
			}
			if bar.Total() > 0 && sum != tt.width {
				t.Errorf("segments sum to %d, want %d", sum, tt.width)
			}
		})
	}
}

func TestButtonView(t *testing.T) {
	active := NewButton("Europe", true).View()
	inactive := NewButton("Europe", false).View()
	if active == inactive {
		t.Error("active and inactive buttons render identically")
	}
}
