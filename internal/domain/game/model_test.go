package game

import "testing"

func sampleGames() []Game {
	return []Game{
		{ID: 1, Home: Side{Name: "Texas State Bobcats"}, Away: Side{Name: "UTSA Roadrunners"}},
		{ID: 2, Home: Side{Name: "Oklahoma Sooners"}, Away: Side{Name: "Texas Longhorns"}},
		{ID: 3, Home: Side{Name: "Texas Longhorns"}, Away: Side{Name: "Rice Owls"}},
	}
}

func TestFindByTeam_CaseInsensitiveExact(t *testing.T) {
	t.Parallel()

	got, ok := FindByTeam(sampleGames(), "  TEXAS LONGHORNS ")
	if !ok {
		t.Fatalf("expected a game")
	}
	if got.ID != 2 {
		t.Fatalf("expected first matching game id=2, got=%d", got.ID)
	}
	if got.IsHome("texas longhorns") {
		t.Fatalf("expected texas to be the away side")
	}
}

func TestFindByTeam_RejectsSubstring(t *testing.T) {
	t.Parallel()

	if got, ok := FindByTeam(sampleGames(), "texas"); ok {
		t.Fatalf("substring must not match, got game id=%d", got.ID)
	}
	if _, ok := FindByTeam(sampleGames(), "Longhorns"); ok {
		t.Fatalf("nickname substring must not match")
	}
}

func TestFindByTeam_EmptyInputs(t *testing.T) {
	t.Parallel()

	if _, ok := FindByTeam(nil, "Texas Longhorns"); ok {
		t.Fatalf("expected no game from empty list")
	}
	if _, ok := FindByTeam(sampleGames(), "   "); ok {
		t.Fatalf("blank team must not match")
	}
}
