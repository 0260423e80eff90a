package variant

// Perft 数叶子节点：depth 层合法走法的全部展开，用来校验走法生成
func (s *GameState) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := s.AllLegalMoves(s.Turn)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := s.Clone()
		next.ApplyMove(m)
		nodes += next.Perft(depth - 1)
	}
	return nodes
}

// Divide 按第一步拆分 Perft 结果
func (s *GameState) Divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range s.AllLegalMoves(s.Turn) {
		next := s.Clone()
		next.ApplyMove(m)
		out[m.String()] += next.Perft(depth - 1)
	}
	return out
}
