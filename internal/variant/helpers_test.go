package variant

import "testing"

func mustSquare(t *testing.T, s string) Square {
	t.Helper()
	sq := ParseSquare(s)
	if sq == NoSquare {
		t.Fatalf("bad square %q", s)
	}
	return sq
}

func mustDecode(t *testing.T, fen string, white, black *PieceSet) *GameState {
	t.Helper()
	s, err := DecodeState(fen, white, black)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return s
}

func mustPlay(t *testing.T, s *GameState, from, to string) Move {
	t.Helper()
	m, err := s.Play(mustSquare(t, from), mustSquare(t, to))
	if err != nil {
		t.Fatalf("play %s%s: %v (fen %s)", from, to, err, s.Encode())
	}
	return m
}

func findMove(moves []Move, to Square) (Move, bool) {
	for _, m := range moves {
		if m.To == to {
			return m, true
		}
	}
	return Move{}, false
}
