package variant

// RoyalSquare 返回 c 方第一个带 royal 特性的棋子所在格，没有则 NoSquare
func (s *GameState) RoyalSquare(c Color) Square {
	for sq, pc := range s.Board {
		if !pc.Empty() && pc.Color == c && s.HasTrait(pc, TraitRoyal) {
			return Square(sq)
		}
	}
	return NoSquare
}

// HasRoyal 报告 c 方是否还有王
func (s *GameState) HasRoyal(c Color) bool {
	return s.RoyalSquare(c) != NoSquare
}
