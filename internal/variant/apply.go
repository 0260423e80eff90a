package variant

// ApplyMove 原地执行一步已经验证过的走法。只检查结构前提：
// 起点无子、预备区槽位不存在、落子格非空时什么都不做。
func (s *GameState) ApplyMove(m Move) {
	if m.FromReserve {
		s.applyPlacement(m)
		return
	}
	if !m.From.Valid() || !m.To.Valid() {
		return
	}
	mover := s.Board[m.From]
	if mover.Empty() {
		return
	}

	// ===== 被吃的子：吃过路兵时不在终点上 =====
	captureSq := m.To
	if m.EnPassant && m.CaptureSquare.Valid() {
		captureSq = m.CaptureSquare
	}
	captured := s.Board[captureSq]
	if !captured.Empty() && captured.Color == mover.Color {
		captured = Piece{}
	}

	s.Board[m.From] = Piece{}
	if m.EnPassant {
		s.Board[captureSq] = Piece{}
	}
	if m.Castle != NoCastle && m.RookFrom.Valid() && m.RookTo.Valid() {
		rook := s.Board[m.RookFrom]
		s.Board[m.RookFrom] = Piece{}
		s.Board[m.RookTo] = rook
	}
	placed := mover
	if m.Promotion != "" {
		placed.Type = m.Promotion
	}
	s.Board[m.To] = placed

	// ===== 易位权 =====
	if s.HasTrait(mover, TraitCastlingKing) {
		s.revokeCastling(mover.Color)
	}
	if s.HasTrait(mover, TraitCastlingRook) {
		s.revokeRookCastling(mover.Color, m.From)
	}

	if !captured.Empty() {
		// 可再部署的子回到它原主人的预备区
		if s.HasTrait(captured, TraitRedeployable) {
			s.Reserves[captured.Color] = append(s.Reserves[captured.Color], Piece{Color: captured.Color, Type: captured.Type})
		}
		if s.HasTrait(captured, TraitCastlingRook) {
			s.revokeRookCastling(captured.Color, captureSq)
		}
	}

	s.EnPassant = NoSquare
	if m.DoubleAdvance && s.HasTrait(mover, TraitPawn) {
		s.EnPassant = Square((int(m.From) + int(m.To)) / 2)
	}
	s.Turn = s.Turn.Opposite()
}

func (s *GameState) applyPlacement(m Move) {
	c := m.ReserveColor
	if !c.valid() || !m.To.Valid() {
		return
	}
	reserve := s.Reserves[c]
	if m.ReserveIndex < 0 || m.ReserveIndex >= len(reserve) {
		return
	}
	if !s.Board[m.To].Empty() {
		return
	}
	pc := reserve[m.ReserveIndex]
	s.Reserves[c] = append(reserve[:m.ReserveIndex:m.ReserveIndex], reserve[m.ReserveIndex+1:]...)
	s.Board[m.To] = pc
	s.EnPassant = NoSquare
	s.Turn = s.Turn.Opposite()
}
