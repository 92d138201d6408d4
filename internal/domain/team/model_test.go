package team

import "testing"

func TestBestMatch_EmptyListReturnsRawSentinel(t *testing.T) {
	t.Parallel()

	got := BestMatch(nil, "texas")
	if got.Matched {
		t.Fatalf("expected unmatched sentinel")
	}
	if got.Name != "texas" {
		t.Fatalf("expected raw name, got %q", got.Name)
	}
	if got.ID != nil {
		t.Fatalf("expected nil id, got %d", *got.ID)
	}
}

func TestBestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []Team
		query      string
		wantName   string
		wantID     int64
	}{
		{
			name: "exact nickname beats earlier substring",
			candidates: []Team{
				{ID: 1, Name: "Texas State Bobcats", Nickname: "Bobcats"},
				{ID: 2, Name: "Texas Longhorns", Nickname: "Texas"},
			},
			query:    "texas",
			wantName: "Texas Longhorns",
			wantID:   2,
		},
		{
			name: "exact name case insensitive",
			candidates: []Team{
				{ID: 10, Name: "Los Angeles Lakers"},
				{ID: 11, Name: "LA Clippers"},
			},
			query:    "  la CLIPPERS ",
			wantName: "LA Clippers",
			wantID:   11,
		},
		{
			name: "first substring wins",
			candidates: []Team{
				{ID: 20, Name: "Golden State Warriors"},
				{ID: 21, Name: "Los Angeles Lakers"},
				{ID: 22, Name: "Lakers Legends"},
			},
			query:    "lakers",
			wantName: "Los Angeles Lakers",
			wantID:   21,
		},
		{
			name: "falls back to first entry",
			candidates: []Team{
				{ID: 30, Name: "Alabama Crimson Tide"},
				{ID: 31, Name: "Auburn Tigers"},
			},
			query:    "bama",
			wantName: "Alabama Crimson Tide",
			wantID:   30,
		},
		{
			name: "first exact match wins on ties",
			candidates: []Team{
				{ID: 40, Name: "Miami Dolphins", Nickname: "Miami"},
				{ID: 41, Name: "Miami Hurricanes", Nickname: "Miami"},
			},
			query:    "miami",
			wantName: "Miami Dolphins",
			wantID:   40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestMatch(tt.candidates, tt.query)
			if !got.Matched {
				t.Fatalf("expected a match")
			}
			if got.Name != tt.wantName {
				t.Fatalf("unexpected name: got=%q want=%q", got.Name, tt.wantName)
			}
			if got.ID == nil || *got.ID != tt.wantID {
				t.Fatalf("unexpected id: got=%v want=%d", got.ID, tt.wantID)
			}
		})
	}
}
