package variant

// genCastlingMoves 只从路线规定的王位出发；王自身被攻击时两侧都不能易位
func genCastlingMoves(g *genCtx) {
	color := g.piece.Color
	enemy := color.Opposite()
	routes := CastlingRoutes(color)
	if len(routes) == 0 || g.s.IsSquareAttacked(g.from, enemy) {
		return
	}
	for _, route := range routes {
		if g.from != route.KingFrom || !g.s.Castling.Has(CastlingRight(color, route.Side)) {
			continue
		}
		if !g.s.allEmpty(route.Empty) {
			continue
		}
		if g.s.anyAttacked(route.Safe, enemy) {
			continue
		}
		rook := g.s.Board[route.RookFrom]
		if rook.Empty() || rook.Color != color || !g.s.HasTrait(rook, TraitCastlingRook) {
			continue
		}
		g.moves = append(g.moves, Move{
			From:          g.from,
			To:            route.KingTo,
			Piece:         g.piece,
			CaptureSquare: NoSquare,
			Castle:        route.Side,
			RookFrom:      route.RookFrom,
			RookTo:        route.RookTo,
			ReserveColor:  NoColor,
			ReserveIndex:  -1,
		})
	}
}

func (s *GameState) allEmpty(squares []Square) bool {
	for _, sq := range squares {
		if !s.Board[sq].Empty() {
			return false
		}
	}
	return true
}

func (s *GameState) anyAttacked(squares []Square, by Color) bool {
	for _, sq := range squares {
		if s.IsSquareAttacked(sq, by) {
			return true
		}
	}
	return false
}
