package domain

import "testing"

func TestOptionLetters(t *testing.T) {
	cases := []struct {
		index  int
		letter string
	}{
		{0, "A"}, {1, "B"}, {4, "E"}, {5, ""}, {-1, ""},
	}
	for _, tc := range cases {
		if got := OptionLetter(tc.index); got != tc.letter {
			t.Fatalf("OptionLetter(%d): expected %q, got %q", tc.index, tc.letter, got)
		}
	}

	if LetterIndex("C") != 2 {
		t.Fatalf("expected C at index 2")
	}
	if LetterIndex("F") != -1 || LetterIndex("") != -1 {
		t.Fatalf("letters beyond E are invalid")
	}
}

func TestCompetitiveOpenSeats(t *testing.T) {
	role := Role{OpenSeats: 10, CategorySeats: 2, DisabilitySeats: 1, ReserveSeats: 5}
	if role.CompetitiveOpenSeats() != 12 {
		t.Fatalf("category seats fold into the open pool, got %d", role.CompetitiveOpenSeats())
	}
}
