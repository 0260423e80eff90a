package variant

// IsSquareAttacked 判断 sq 是否被 by 这一方攻击。
// 采用走法模拟：对方任何棋子在攻击模式下能“走到”这个格子，就算被攻击。
func (s *GameState) IsSquareAttacked(sq Square, by Color) bool {
	if !sq.Valid() || !by.valid() {
		return false
	}
	for from := Square(0); from < NumSquares; from++ {
		pc := s.Board[from]
		if pc.Empty() || pc.Color != by {
			continue
		}
		for _, mv := range s.PseudoMoves(from, true) {
			if mv.To == sq {
				return true
			}
		}
	}
	return false
}

// IsInCheck 判断 c 这一方的王（带 royal 特性的棋子）是否被将军。没有王就不存在将军。
func (s *GameState) IsInCheck(c Color) bool {
	sq := s.RoyalSquare(c)
	if sq == NoSquare {
		return false
	}
	return s.IsSquareAttacked(sq, c.Opposite())
}
