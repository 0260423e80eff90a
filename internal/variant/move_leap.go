package variant

// 跳子：每个偏移一个候选格，中间格不看
func genLeaperMoves(g *genCtx, offsets []Offset) {
	for _, d := range offsets {
		r, c := g.row+d[0], g.col+d[1]
		if !onBoard(r, c) {
			continue
		}
		g.add(Move{To: indexOf(r, c)})
	}
}
