package model

import "testing"

func TestMatchSides(t *testing.T) {
	m := Match{TeamA: [2]string{"a", "b"}, TeamB: [2]string{"c", "d"}}

	if m.Scored() || m.Winners() != nil || m.Losers() != nil {
		t.Error("unscored match should have no winners or losers")
	}
	if !m.Includes("c") || m.Includes("e") {
		t.Error("Includes() mismatch")
	}

	m.Winner = WinnerB
	if w := m.Winners(); len(w) != 2 || w[0] != "c" || w[1] != "d" {
		t.Errorf("Winners() = %v, want [c d]", w)
	}
	if l := m.Losers(); len(l) != 2 || l[0] != "a" {
		t.Errorf("Losers() = %v, want [a b]", l)
	}
}

func TestCourtAssignmentString(t *testing.T) {
	a := CourtAssignment{CourtID: 2, TeamA: [2]string{"a", "d"}, TeamB: [2]string{"b", "c"}}
	want := "Court 2: a & d vs b & c"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Player{ID: "p1"}).DisplayName(); got != "p1" {
		t.Errorf("DisplayName() = %q, want p1", got)
	}
	if got := (Player{ID: "p1", Name: "Ann"}).DisplayName(); got != "Ann" {
		t.Errorf("DisplayName() = %q, want Ann", got)
	}
}
