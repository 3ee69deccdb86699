package pipeline

import (
	"reflect"
	"testing"
)

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{
			name:  "single headliner",
			title: "Vampire Weekend",
			want:  []string{"Vampire Weekend"},
		},
		{
			name:  "co-headliners with plus",
			title: "Vampire Weekend + Courtney Barnett",
			want:  []string{"Vampire Weekend", "Courtney Barnett"},
		},
		{
			name:  "an evening with",
			title: "An Evening with Fleet Foxes",
			want:  []string{"Fleet Foxes"},
		},
		{
			name:  "special guest stripped, guest kept as candidate",
			title: "Khruangbin with Special Guest Men I Trust",
			want:  []string{"Khruangbin", "Men I Trust"},
		},
		{
			name:  "tour subtitle after colon",
			title: "Mitski: The Land Is Inhospitable Tour",
			want:  []string{"Mitski"},
		},
		{
			name:  "tour subtitle after dash",
			title: "The National - First Two Pages Tour",
			want:  []string{"The National"},
		},
		{
			name:  "parenthetical qualifier",
			title: "Caribou (Rescheduled)",
			want:  []string{"Caribou"},
		},
		{
			name:  "ampersand split",
			title: "Sylvan Esso & Helado Negro",
			want:  []string{"Sylvan Esso", "Helado Negro"},
		},
		{
			name:  "duplicate candidate collapses",
			title: "Beach House + Beach House",
			want:  []string{"Beach House"},
		},
		{
			name:  "nothing survives",
			title: "An Evening with ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTitle(tt.title)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}
