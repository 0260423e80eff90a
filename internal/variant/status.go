package variant

import "fmt"

// UpdateStatus 一步落定后判断终局：轮到的一方无路可走时，被将军为将杀，否则为逼和
func (s *GameState) UpdateStatus() {
	if s.GameOver {
		return
	}
	if s.HasLegalMove(s.Turn) {
		return
	}
	s.GameOver = true
	if s.IsInCheck(s.Turn) {
		s.Outcome = Checkmate
		s.Winner = s.Turn.Opposite()
	} else {
		s.Outcome = Stalemate
		s.Winner = NoColor
	}
}

// Timeout 超时判负，不再做任何合法性计算
func (s *GameState) Timeout(loser Color) {
	if s.GameOver || !loser.valid() {
		return
	}
	s.GameOver = true
	s.Outcome = Timeout
	s.Winner = loser.Opposite()
}

func (s *GameState) StatusText() string {
	switch {
	case s.GameOver && s.Outcome == Checkmate:
		return fmt.Sprintf("Checkmate. %s wins.", s.Winner.Name())
	case s.GameOver && s.Outcome == Stalemate:
		return "Stalemate."
	case s.GameOver && s.Outcome == Timeout:
		return fmt.Sprintf("%s wins on time.", s.Winner.Name())
	case s.GameOver:
		return "Game over."
	}
	text := fmt.Sprintf("%s to move.", s.Turn.Name())
	if s.IsInCheck(s.Turn) {
		text += " Check."
	}
	return text
}

// Commit 对外唯一的落子入口：拒绝已结束的对局，重新推导合法性，执行后更新终局状态
func (s *GameState) Commit(m Move) (Move, error) {
	if s.GameOver {
		return Move{}, ErrGameOver
	}
	legal, ok := s.FindLegalMove(m)
	if !ok {
		return Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	s.ApplyMove(legal)
	s.Ply++
	s.UpdateStatus()
	return legal, nil
}

// Play 按起点终点走子
func (s *GameState) Play(from, to Square) (Move, error) {
	return s.Commit(Move{From: from, To: to, ReserveColor: NoColor, ReserveIndex: -1})
}

// Place 从 c 方预备区第 index 个棋子落到 to
func (s *GameState) Place(c Color, index int, to Square) (Move, error) {
	return s.Commit(Move{From: NoSquare, To: to, FromReserve: true, ReserveColor: c, ReserveIndex: index})
}

// ReplacePieceSet 开局前更换某一方的套装，返回新的初始局面
func (s *GameState) ReplacePieceSet(c Color, set *PieceSet) (*GameState, error) {
	if !c.valid() {
		return nil, ErrInvalidColor
	}
	if s.Ply > 0 {
		return nil, ErrGameStarted
	}
	if set == nil {
		return nil, ErrUnknownPieceSet
	}
	sets := s.Sets
	sets[c] = set
	return NewGameState(sets[White], sets[Black]), nil
}
