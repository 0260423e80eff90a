package variant

import (
	"errors"
	"testing"
)

func TestOpeningPawnMoves(t *testing.T) {
	s := NewGameState(Classic(), Classic())
	moves := s.LegalMoves(mustSquare(t, "e2"))
	if len(moves) != 2 {
		t.Fatalf("e2 moves: got=%d want=2 (%v)", len(moves), moves)
	}
	for _, to := range []string{"e3", "e4"} {
		if _, ok := findMove(moves, mustSquare(t, to)); !ok {
			t.Fatalf("e2 should reach %s: %v", to, moves)
		}
	}
	if _, ok := findMove(moves, mustSquare(t, "e5")); ok {
		t.Fatalf("e2 must not reach e5")
	}

	m := mustPlay(t, s, "e2", "e4")
	if !m.DoubleAdvance {
		t.Fatalf("e2e4 should be a double advance: %+v", m)
	}
	if s.EnPassant != mustSquare(t, "e3") {
		t.Fatalf("en passant: got=%v want=e3", s.EnPassant)
	}
	mustPlay(t, s, "g8", "f6")
	if s.EnPassant != NoSquare {
		t.Fatalf("en passant should clear: got=%v", s.EnPassant)
	}
}

func TestLegalMovesOnlyForSideToMove(t *testing.T) {
	s := NewGameState(Classic(), Classic())
	if got := s.LegalMoves(mustSquare(t, "e7")); len(got) != 0 {
		t.Fatalf("black moved on white's turn: %v", got)
	}
	if got := s.LegalMoves(mustSquare(t, "e4")); len(got) != 0 {
		t.Fatalf("empty square produced moves: %v", got)
	}
	if got := s.LegalMoves(NoSquare); len(got) != 0 {
		t.Fatalf("invalid square produced moves: %v", got)
	}
}

func TestEnPassantCapture(t *testing.T) {
	s := NewGameState(Classic(), Classic())
	mustPlay(t, s, "e2", "e4")
	mustPlay(t, s, "a7", "a6")
	mustPlay(t, s, "e4", "e5")
	mustPlay(t, s, "d7", "d5")

	moves := s.LegalMoves(mustSquare(t, "e5"))
	ep, ok := findMove(moves, mustSquare(t, "d6"))
	if !ok {
		t.Fatalf("e5 should capture en passant on d6: %v", moves)
	}
	if !ep.EnPassant || ep.CaptureSquare != mustSquare(t, "d5") {
		t.Fatalf("en passant move: got=%+v", ep)
	}
	if ep.Captured != (Piece{Color: Black, Type: "p"}) {
		t.Fatalf("captured: got=%v want=black pawn", ep.Captured)
	}

	mustPlay(t, s, "e5", "d6")
	if !s.PieceAt(mustSquare(t, "d5")).Empty() {
		t.Fatalf("d5 should be empty after en passant")
	}
	if got := s.PieceAt(mustSquare(t, "d6")); got != (Piece{Color: White, Type: "p"}) {
		t.Fatalf("d6: got=%v want=white pawn", got)
	}
}

func TestEnPassantExpiresAfterOneMove(t *testing.T) {
	s := NewGameState(Classic(), Classic())
	mustPlay(t, s, "e2", "e4")
	mustPlay(t, s, "a7", "a6")
	mustPlay(t, s, "e4", "e5")
	mustPlay(t, s, "d7", "d5")
	mustPlay(t, s, "b1", "c3")
	mustPlay(t, s, "a6", "a5")
	if _, ok := findMove(s.LegalMoves(mustSquare(t, "e5")), mustSquare(t, "d6")); ok {
		t.Fatalf("en passant must not be available one move later")
	}
}

func TestDoubleAdvanceWithoutPawnTraitSetsNoEnPassant(t *testing.T) {
	// 走法照兵走，但去掉兵的特性后两步走不留过路兵格
	ps := Classic()
	ps.Pieces[0].Traits = 0
	s := NewGameState(ps, Classic())
	m := mustPlay(t, s, "e2", "e4")
	if !m.DoubleAdvance {
		t.Fatalf("e2e4 should still be a double advance: %+v", m)
	}
	if s.EnPassant != NoSquare {
		t.Fatalf("en passant: got=%v want=none", s.EnPassant)
	}
}

func TestEnPassantVictimMustBePawn(t *testing.T) {
	// d5 上是马而不是兵，即便过路兵格被设置也不能吃
	s := mustDecode(t, "4k3/8/8/3nP3/8/8/8/4K3 w - d6 0 1", Classic(), Classic())
	if _, ok := findMove(s.LegalMoves(mustSquare(t, "e5")), mustSquare(t, "d6")); ok {
		t.Fatalf("en passant onto a non-pawn victim")
	}
}

func TestCastling(t *testing.T) {
	s := mustDecode(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", Classic(), Classic())
	moves := s.LegalMoves(mustSquare(t, "e1"))
	for _, to := range []string{"g1", "c1"} {
		m, ok := findMove(moves, mustSquare(t, to))
		if !ok || m.Castle == NoCastle {
			t.Fatalf("expected castling to %s: %v", to, moves)
		}
	}

	mustPlay(t, s, "e1", "g1")
	if got := s.PieceAt(mustSquare(t, "f1")); got != (Piece{Color: White, Type: "r"}) {
		t.Fatalf("f1 after O-O: got=%v want=white rook", got)
	}
	if !s.PieceAt(mustSquare(t, "h1")).Empty() {
		t.Fatalf("h1 should be empty after O-O")
	}
	if s.Castling.Has(CastlingWhiteKingside) || s.Castling.Has(CastlingWhiteQueenside) {
		t.Fatalf("white rights should be gone: %v", s.Castling)
	}
}

func TestCastlingBlockedByAttackedTransit(t *testing.T) {
	s := mustDecode(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1", Classic(), Classic())
	if _, ok := findMove(s.LegalMoves(mustSquare(t, "e1")), mustSquare(t, "g1")); !ok {
		t.Fatalf("castling should be available without the attacker")
	}

	s = mustDecode(t, "4kr2/8/8/8/8/8/8/4K2R w K - 0 1", Classic(), Classic())
	if _, ok := findMove(s.LegalMoves(mustSquare(t, "e1")), mustSquare(t, "g1")); ok {
		t.Fatalf("castling through attacked f1 must be rejected")
	}
}

func TestCastlingRejectedOutOfCheck(t *testing.T) {
	s := mustDecode(t, "4r1k1/8/8/8/8/8/8/4K2R w K - 0 1", Classic(), Classic())
	if _, ok := findMove(s.LegalMoves(mustSquare(t, "e1")), mustSquare(t, "g1")); ok {
		t.Fatalf("castling while in check must be rejected")
	}
}

func TestCapturedRookRevokesRight(t *testing.T) {
	s := mustDecode(t, "4k3/8/8/8/8/6n1/8/R3K2R b KQ - 0 1", Classic(), Classic())
	mustPlay(t, s, "g3", "h1")
	if s.Castling.Has(CastlingWhiteKingside) {
		t.Fatalf("kingside right should be revoked: %v", s.Castling)
	}
	if !s.Castling.Has(CastlingWhiteQueenside) {
		t.Fatalf("queenside right should stay: %v", s.Castling)
	}
}

func TestBackRankMate(t *testing.T) {
	s := mustDecode(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", Classic(), Classic())
	mustPlay(t, s, "a1", "a8")

	if got := s.AllLegalMoves(Black); len(got) != 0 {
		t.Fatalf("black should have no moves: %v", got)
	}
	if !s.IsInCheck(Black) {
		t.Fatalf("black should be in check")
	}
	if !s.GameOver || s.Outcome != Checkmate || s.Winner != White {
		t.Fatalf("status: over=%v outcome=%v winner=%v", s.GameOver, s.Outcome, s.Winner)
	}
	if got, want := s.StatusText(), "Checkmate. White wins."; got != want {
		t.Fatalf("status text: got=%q want=%q", got, want)
	}
	if _, err := s.Play(mustSquare(t, "g8"), mustSquare(t, "h8")); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after mate: got=%v want=%v", err, ErrGameOver)
	}
}

func TestStalemate(t *testing.T) {
	s := mustDecode(t, "k7/8/1Q6/8/8/8/8/7K w - - 0 1", Classic(), Classic())
	mustPlay(t, s, "b6", "c7")
	if !s.GameOver || s.Outcome != Stalemate || s.Winner != NoColor {
		t.Fatalf("status: over=%v outcome=%v winner=%v", s.GameOver, s.Outcome, s.Winner)
	}
	if got := s.StatusText(); got != "Stalemate." {
		t.Fatalf("status text: got=%q", got)
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	s := mustDecode(t, "4r2k/8/8/8/8/8/4N3/4K3 w - - 0 1", Classic(), Classic())
	if got := s.LegalMoves(mustSquare(t, "e2")); len(got) != 0 {
		t.Fatalf("pinned knight moved: %v", got)
	}
}

func TestPromotion(t *testing.T) {
	s := mustDecode(t, "8/P7/8/8/8/8/k7/4K3 w - - 0 1", Classic(), Classic())
	m := mustPlay(t, s, "a7", "a8")
	if m.Promotion != "q" {
		t.Fatalf("promotion: got=%q want=q", m.Promotion)
	}
	if got := s.PieceAt(mustSquare(t, "a8")); got != (Piece{Color: White, Type: "q"}) {
		t.Fatalf("a8: got=%v want=white queen", got)
	}
}

func TestPromotionChoiceMustMatch(t *testing.T) {
	s := mustDecode(t, "8/P7/8/8/8/8/k7/4K3 w - - 0 1", Classic(), Classic())
	a7, a8 := mustSquare(t, "a7"), mustSquare(t, "a8")
	if _, err := s.Commit(Move{From: a7, To: a8, Promotion: "n"}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("underpromotion: got=%v want=%v", err, ErrIllegalMove)
	}
	m, err := s.Commit(Move{From: a7, To: a8, Promotion: "q"})
	if err != nil || m.Promotion != "q" {
		t.Fatalf("queen promotion: move=%v err=%v", m, err)
	}
}

func TestIllegalMoveRejected(t *testing.T) {
	s := NewGameState(Classic(), Classic())
	if _, err := s.Play(mustSquare(t, "e2"), mustSquare(t, "e5")); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("got=%v want=%v", err, ErrIllegalMove)
	}
	if s.Turn != White || s.Ply != 0 {
		t.Fatalf("rejected move changed state: turn=%v ply=%d", s.Turn, s.Ply)
	}
}

func TestRoyalPawnsCaptureBackward(t *testing.T) {
	s := mustDecode(t, "4k3/8/8/8/4P3/3n4/8/7K w - - 0 1", RoyalPawns(), RoyalPawns())
	m, ok := findMove(s.LegalMoves(mustSquare(t, "e4")), mustSquare(t, "d3"))
	if !ok || !m.IsCapture() {
		t.Fatalf("royal pawn should capture backward on d3: %+v", m)
	}

	s = mustDecode(t, "4k3/8/8/8/4P3/3n4/8/7K w - - 0 1", Classic(), Classic())
	if _, ok := findMove(s.LegalMoves(mustSquare(t, "e4")), mustSquare(t, "d3")); ok {
		t.Fatalf("classic pawn captured backward")
	}
}

func TestOverknightLeaps(t *testing.T) {
	s := NewGameState(Overknight(), Classic())
	moves := s.LegalMoves(mustSquare(t, "b1"))
	// 马步 a3 c3，外加直线三格 b4
	for _, to := range []string{"a3", "c3", "b4"} {
		if _, ok := findMove(moves, mustSquare(t, to)); !ok {
			t.Fatalf("overknight should reach %s: %v", to, moves)
		}
	}
	if len(moves) != 3 {
		t.Fatalf("overknight moves: got=%d want=3", len(moves))
	}
}

func TestBureaucratRedeployment(t *testing.T) {
	s := NewGameState(Bureaucrat(), Bureaucrat())
	if got := s.PieceAt(mustSquare(t, "a3")); got != (Piece{Color: White, Type: "u"}) {
		t.Fatalf("a3: got=%v want=white bureaucrat", got)
	}
	for _, m := range s.LegalMoves(mustSquare(t, "a3")) {
		if m.IsCapture() {
			t.Fatalf("bureaucrat captured: %+v", m)
		}
	}

	mustPlay(t, s, "a3", "g6")
	m := mustPlay(t, s, "h7", "g6")
	if m.Captured != (Piece{Color: White, Type: "u"}) {
		t.Fatalf("captured: got=%v want=white bureaucrat", m.Captured)
	}
	if got := s.Reserve(White); len(got) != 1 || got[0].Type != "u" {
		t.Fatalf("white reserve: got=%v", got)
	}
	if got := s.Reserve(Black); len(got) != 0 {
		t.Fatalf("black reserve: got=%v", got)
	}

	placements := s.LegalReserveMoves(White, 0)
	if len(placements) == 0 {
		t.Fatalf("no placements from reserve")
	}
	e4 := mustSquare(t, "e4")
	if _, ok := findMove(placements, e4); !ok {
		t.Fatalf("e4 placement missing")
	}
	if _, err := s.Place(White, 0, e4); err != nil {
		t.Fatalf("place: %v", err)
	}
	if got := s.PieceAt(e4); got != (Piece{Color: White, Type: "u"}) {
		t.Fatalf("e4: got=%v want=white bureaucrat", got)
	}
	if got := s.Reserve(White); len(got) != 0 {
		t.Fatalf("reserve slot not cleared: %v", got)
	}
	if s.Turn != Black {
		t.Fatalf("turn: got=%v want=b", s.Turn)
	}
}

func TestApplyMoveStructuralNoOps(t *testing.T) {
	s := NewGameState(Bureaucrat(), Bureaucrat())
	before := s.Encode()

	s.ApplyMove(Move{From: mustSquare(t, "e4"), To: mustSquare(t, "e5")})
	s.ApplyMove(Move{From: NoSquare, To: mustSquare(t, "e4"), FromReserve: true, ReserveColor: White, ReserveIndex: 0})
	s.Reserves[White] = []Piece{{Color: White, Type: "u"}}
	s.ApplyMove(Move{From: NoSquare, To: mustSquare(t, "e2"), FromReserve: true, ReserveColor: White, ReserveIndex: 0})
	s.Reserves[White] = nil

	if got := s.Encode(); got != before {
		t.Fatalf("no-op moves changed state: got=%s want=%s", got, before)
	}
}

func TestTimeout(t *testing.T) {
	s := NewGameState(Classic(), Classic())
	s.Timeout(White)
	if !s.GameOver || s.Outcome != Timeout || s.Winner != Black {
		t.Fatalf("status: over=%v outcome=%v winner=%v", s.GameOver, s.Outcome, s.Winner)
	}
	if got, want := s.StatusText(), "Black wins on time."; got != want {
		t.Fatalf("status text: got=%q want=%q", got, want)
	}
}

func TestStatusTextCheck(t *testing.T) {
	s := mustDecode(t, "4k3/8/8/8/8/8/8/4KQ2 b - - 0 1", Classic(), Classic())
	if got := s.StatusText(); got != "Black to move." {
		t.Fatalf("got=%q", got)
	}
	s = mustDecode(t, "4k3/8/8/8/8/8/8/4Q1K1 b - - 0 1", Classic(), Classic())
	if got := s.StatusText(); got != "Black to move. Check." {
		t.Fatalf("got=%q", got)
	}
}

func TestNoRoyalMeansNoCheck(t *testing.T) {
	s := mustDecode(t, "8/8/8/8/8/8/8/4Q3 b - - 0 1", Classic(), Classic())
	if s.IsInCheck(Black) {
		t.Fatalf("black has no royal piece and cannot be in check")
	}
}

func TestReplacePieceSet(t *testing.T) {
	s := NewGameState(Classic(), Classic())
	next, err := s.ReplacePieceSet(Black, Bureaucrat())
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := next.PieceAt(mustSquare(t, "h6")); got != (Piece{Color: Black, Type: "u"}) {
		t.Fatalf("h6: got=%v want=black bureaucrat", got)
	}
	if !next.PieceAt(mustSquare(t, "a3")).Empty() {
		t.Fatalf("white kept the classic set, a3 should be empty")
	}

	mustPlay(t, next, "e2", "e4")
	if _, err := next.ReplacePieceSet(White, Bureaucrat()); !errors.Is(err, ErrGameStarted) {
		t.Fatalf("got=%v want=%v", err, ErrGameStarted)
	}
}
