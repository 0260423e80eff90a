package variant

// 滑子：每个方向最多走 maxSteps 步，遇到第一个子就停（敌子可吃）。
// 攻击模式下被挡住的那一格无论敌我都算。
func genRayMoves(g *genCtx, dirs []Offset, maxSteps int) {
	for _, d := range dirs {
		r, c := g.row+d[0], g.col+d[1]
		for step := 1; onBoard(r, c) && step <= maxSteps; step++ {
			to := indexOf(r, c)
			g.add(Move{To: to})
			if !g.s.Board[to].Empty() {
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}
