package variant

import "testing"

func TestHashReturnsAfterKnightsGoHome(t *testing.T) {
	s := NewGameState(Classic(), Classic())
	initial := s.CalculateHash()

	mustPlay(t, s, "g1", "f3")
	if s.CalculateHash() == initial {
		t.Fatalf("hash did not change after Nf3")
	}
	mustPlay(t, s, "g8", "f6")
	mustPlay(t, s, "f3", "g1")
	mustPlay(t, s, "f6", "g8")

	if got := s.CalculateHash(); got != initial {
		t.Fatalf("hash mismatch: got=%d want=%d", got, initial)
	}
}

func TestHashMatchesDecodedState(t *testing.T) {
	s := NewGameState(Bureaucrat(), Bureaucrat())
	for ply := 0; ply < 24 && !s.GameOver; ply++ {
		moves := s.AllLegalMoves(s.Turn)
		m := moves[len(moves)/2]
		if _, err := s.Commit(m); err != nil {
			t.Fatalf("commit at ply %d: %v", ply, err)
		}
		decoded := mustDecode(t, s.Encode(), Bureaucrat(), Bureaucrat())
		if got, want := decoded.CalculateHash(), s.CalculateHash(); got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d fen=%s", ply, got, want, s.Encode())
		}
	}
}

func TestHashDistinguishesReservesAndRights(t *testing.T) {
	a := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", Bureaucrat(), Bureaucrat())
	b := mustDecode(t, "4k3/8/8/8/8/8/8/4K3[U] w - - 0 1", Bureaucrat(), Bureaucrat())
	if a.CalculateHash() == b.CalculateHash() {
		t.Fatalf("reserve not hashed")
	}
	c := mustDecode(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1", Bureaucrat(), Bureaucrat())
	if a.CalculateHash() == c.CalculateHash() {
		t.Fatalf("side to move not hashed")
	}
	d := mustDecode(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1", Classic(), Classic())
	e := mustDecode(t, "4k3/8/8/8/8/8/8/4K2R w - - 0 1", Classic(), Classic())
	if d.CalculateHash() == e.CalculateHash() {
		t.Fatalf("castling rights not hashed")
	}
}
