package variant

// IsMoveLegal 在克隆上模拟这一步，走完后 c 方没有被将军才合法
func (s *GameState) IsMoveLegal(m Move, c Color) bool {
	next := s.Clone()
	next.ApplyMove(m)
	return !next.IsInCheck(c)
}

func (s *GameState) filterLegal(moves []Move, c Color) []Move {
	legal := moves[:0]
	for _, m := range moves {
		if s.IsMoveLegal(m, c) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMoves 只返回轮到走的一方在 sq 上棋子的合法走法
func (s *GameState) LegalMoves(sq Square) []Move {
	pc := s.PieceAt(sq)
	if pc.Empty() || pc.Color != s.Turn {
		return nil
	}
	return s.filterLegal(s.PseudoMoves(sq, false), pc.Color)
}

// LegalReserveMoves 预备区第 index 个棋子的合法落子
func (s *GameState) LegalReserveMoves(c Color, index int) []Move {
	if c != s.Turn {
		return nil
	}
	reserve := s.Reserve(c)
	if index < 0 || index >= len(reserve) {
		return nil
	}
	return s.filterLegal(s.PseudoReserveMoves(reserve[index], c, index), c)
}

// AllLegalMoves 汇总 c 方棋盘上所有棋子和预备区所有棋子的合法走法。
// 不看 Turn，终局判断时按指定一方计算。
func (s *GameState) AllLegalMoves(c Color) []Move {
	var moves []Move
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := s.Board[sq]
		if pc.Empty() || pc.Color != c {
			continue
		}
		moves = append(moves, s.filterLegal(s.PseudoMoves(sq, false), c)...)
	}
	for i, pc := range s.Reserve(c) {
		moves = append(moves, s.filterLegal(s.PseudoReserveMoves(pc, c, i), c)...)
	}
	return moves
}

// HasLegalMove 和 AllLegalMoves 一致，但找到一步就返回
func (s *GameState) HasLegalMove(c Color) bool {
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := s.Board[sq]
		if pc.Empty() || pc.Color != c {
			continue
		}
		for _, m := range s.PseudoMoves(sq, false) {
			if s.IsMoveLegal(m, c) {
				return true
			}
		}
	}
	for i, pc := range s.Reserve(c) {
		for _, m := range s.PseudoReserveMoves(pc, c, i) {
			if s.IsMoveLegal(m, c) {
				return true
			}
		}
	}
	return false
}

// FindLegalMove 在 LegalMoves / LegalReserveMoves 里找和 m 同起点同终点的那一步；
// m 写了升变目标时必须和生成的一致
func (s *GameState) FindLegalMove(m Move) (Move, bool) {
	var candidates []Move
	if m.FromReserve {
		candidates = s.LegalReserveMoves(m.ReserveColor, m.ReserveIndex)
	} else {
		candidates = s.LegalMoves(m.From)
	}
	for _, c := range candidates {
		if c.Same(m) && (m.Promotion == "" || m.Promotion == c.Promotion) {
			return c, true
		}
	}
	return Move{}, false
}
