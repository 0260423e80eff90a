package variant

func containsRow(rows []int, row int) bool {
	for _, r := range rows {
		if r == row {
			return true
		}
	}
	return false
}

// promote 到达升变行时挂上升变目标（目标与自身相同则不算升变）
func (g *genCtx) promote(m *Move, row int, promotionRows []int) {
	if !containsRow(promotionRows, row) {
		return
	}
	target, ok := g.s.Set(g.piece.Color).PromotionTarget()
	if ok && target != g.piece.Type {
		m.Promotion = target
	}
}

func genPawnMoves(g *genCtx, pm *PawnMovement) {
	color := g.piece.Color
	dir := pm.forward(color)
	promotionRows := pm.promotionRows(color)

	// ===== 前进（不吃子）；攻击模式下不算 =====
	if !g.attacksOnly {
		r1 := g.row + dir
		if onBoard(r1, g.col) && g.s.Board[indexOf(r1, g.col)].Empty() {
			m := Move{To: indexOf(r1, g.col)}
			g.promote(&m, r1, promotionRows)
			g.add(m)

			if containsRow(pm.startRows(color), g.row) {
				r2 := g.row + 2*dir
				if onBoard(r2, g.col) && g.s.Board[indexOf(r2, g.col)].Empty() {
					g.add(Move{To: indexOf(r2, g.col), DoubleAdvance: true})
				}
			}
		}
	}

	// ===== 斜吃 / 吃过路兵 =====
	for _, d := range pm.captureDirections(color) {
		r, c := g.row+d[0], g.col+d[1]
		if !onBoard(r, c) {
			continue
		}
		to := indexOf(r, c)
		if g.attacksOnly {
			g.add(Move{To: to})
			continue
		}
		target := g.s.Board[to]
		if !target.Empty() && target.Color != color {
			m := Move{To: to}
			g.promote(&m, r, promotionRows)
			g.add(m)
			continue
		}
		if d[0] != dir || g.s.EnPassant != to {
			continue
		}
		// 被吃的兵和自己在同一行、在目标列
		victimSq := indexOf(g.row, c)
		victim := g.s.Board[victimSq]
		if victim.Empty() || victim.Color == color || !g.s.HasTrait(victim, TraitPawn) {
			continue
		}
		g.moves = append(g.moves, Move{
			From:          g.from,
			To:            to,
			Piece:         g.piece,
			Captured:      victim,
			CaptureSquare: victimSq,
			EnPassant:     true,
			RookFrom:      NoSquare,
			RookTo:        NoSquare,
			ReserveColor:  NoColor,
			ReserveIndex:  -1,
		})
	}
}
