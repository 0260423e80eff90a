package variant

// genCtx 一次生成调用的上下文
type genCtx struct {
	s           *GameState
	from        Square
	piece       Piece
	row, col    int
	attacksOnly bool
	moves       []Move
}

// add 攻击模式下所有候选格都算（己方棋子所在格也算“保护”）；
// 普通模式下跳过己方棋子，并记录被吃的子。
func (g *genCtx) add(m Move) {
	m.From = g.from
	m.Piece = g.piece
	m.CaptureSquare = NoSquare
	m.RookFrom, m.RookTo = NoSquare, NoSquare
	m.ReserveColor, m.ReserveIndex = NoColor, -1
	if g.attacksOnly {
		g.moves = append(g.moves, m)
		return
	}
	target := g.s.Board[m.To]
	if !target.Empty() && target.Color == g.piece.Color {
		return
	}
	if !target.Empty() {
		m.Captured = target
		m.CaptureSquare = m.To
	}
	g.moves = append(g.moves, m)
}

// PseudoMoves 生成 sq 上棋子的伪合法走法（不考虑自己的王是否被将）。
// attacksOnly=true 时只报告受威胁的格子，供将军检测使用。
func (s *GameState) PseudoMoves(sq Square, attacksOnly bool) []Move {
	if !sq.Valid() {
		return nil
	}
	pc := s.Board[sq]
	if pc.Empty() {
		return nil
	}
	def := s.Definition(pc)
	if def == nil {
		return nil
	}
	g := &genCtx{
		s:           s,
		from:        sq,
		piece:       pc,
		row:         sq.Row(),
		col:         sq.Col(),
		attacksOnly: attacksOnly,
	}
	mv := def.Movement
	if mv.Pawn != nil {
		genPawnMoves(g, mv.Pawn)
	}
	if mv.AnyEmptySquare && !attacksOnly {
		genAnyEmptyMoves(g)
	}
	if len(mv.Leaps) > 0 {
		genLeaperMoves(g, mv.Leaps)
	}
	if len(mv.Rays) > 0 {
		genRayMoves(g, mv.Rays, mv.raySteps())
	}
	if mv.Castling && !attacksOnly {
		genCastlingMoves(g)
	}
	return g.moves
}

// PseudoReserveMoves 预备区棋子的落子：只有带“任意空格”能力的棋子可以落，每个空格一步
func (s *GameState) PseudoReserveMoves(pc Piece, c Color, index int) []Move {
	if pc.Empty() || pc.Color != c {
		return nil
	}
	def := s.Definition(pc)
	if def == nil || !def.Movement.AnyEmptySquare {
		return nil
	}
	var moves []Move
	for to := Square(0); to < NumSquares; to++ {
		if !s.Board[to].Empty() {
			continue
		}
		moves = append(moves, Move{
			From:          NoSquare,
			To:            to,
			Piece:         pc,
			CaptureSquare: NoSquare,
			RookFrom:      NoSquare,
			RookTo:        NoSquare,
			FromReserve:   true,
			ReserveColor:  c,
			ReserveIndex:  index,
		})
	}
	return moves
}

// 任意空格：永远不是吃子
func genAnyEmptyMoves(g *genCtx) {
	for to := Square(0); to < NumSquares; to++ {
		if g.s.Board[to].Empty() {
			g.add(Move{To: to})
		}
	}
}
