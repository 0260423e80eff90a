package variant

// 只读的偏移表
var (
	knightLeaps = []Offset{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	orthogonalThreeLeaps = []Offset{{-3, 0}, {3, 0}, {0, -3}, {0, 3}}
	outriderLeaps        = []Offset{
		{-3, -1}, {-3, 1}, {3, -1}, {3, 1},
		{-1, -3}, {-1, 3}, {1, -3}, {1, 3},
	}
	bishopRays = []Offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookRays   = []Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	kingSteps  = []Offset{
		{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
		{0, 1}, {1, -1}, {1, 0}, {1, 1},
	}
)

const (
	SetClassic    = "classic"
	SetOverknight = "overknight"
	SetBureaucrat = "bureaucrat"
	SetRoyalPawns = "royal-pawns"
)

func concat(parts ...[]Offset) []Offset {
	var out []Offset
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func classicPieces() []PieceTypeDefinition {
	return []PieceTypeDefinition{
		{ID: "p", Name: "Pawn", Tag: "p", Movement: Movement{Pawn: &PawnMovement{}}, Traits: TraitPawn},
		{ID: "n", Name: "Knight", Tag: "n", Movement: Movement{Leaps: knightLeaps}},
		{ID: "b", Name: "Bishop", Tag: "b", Movement: Movement{Rays: bishopRays}},
		{ID: "r", Name: "Rook", Tag: "r", Movement: Movement{Rays: rookRays}, Traits: TraitCastlingRook},
		{ID: "q", Name: "Queen", Tag: "q", Movement: Movement{Rays: concat(rookRays, bishopRays)}},
		{ID: "k", Name: "King", Tag: "k", Movement: Movement{Leaps: kingSteps, Castling: true}, Traits: TraitRoyal | TraitCastlingKing},
	}
}

func rankLayout(rank int, types string) []Placement {
	out := make([]Placement, 0, len(types))
	for i := 0; i < len(types); i++ {
		out = append(out, Placement{Type: PieceType(types[i : i+1]), Square: string([]byte{files[i], byte('0' + rank)})})
	}
	return out
}

func classicLayout() Layout {
	return Layout{
		White: append(rankLayout(1, "rnbqkbnr"), rankLayout(2, "pppppppp")...),
		Black: append(rankLayout(8, "rnbqkbnr"), rankLayout(7, "pppppppp")...),
	}
}

func replacePiece(pieces []PieceTypeDefinition, def PieceTypeDefinition) []PieceTypeDefinition {
	for i := range pieces {
		if pieces[i].ID == def.ID {
			pieces[i] = def
			return pieces
		}
	}
	return append(pieces, def)
}

// Classic 标准国际象棋
func Classic() *PieceSet {
	return &PieceSet{
		ID:            SetClassic,
		Name:          "Classic",
		Description:   "Standard chess movement for every piece.",
		PromotionType: "q",
		Pieces:        classicPieces(),
		Layout:        classicLayout(),
	}
}

// Overknight 马额外多出直线三格跳；另带一个默认不上盘的 Outrider
func Overknight() *PieceSet {
	pieces := replacePiece(classicPieces(), PieceTypeDefinition{
		ID: "n", Name: "Overknight", Tag: "o",
		Movement: Movement{Leaps: concat(knightLeaps, orthogonalThreeLeaps)},
	})
	pieces = append(pieces, PieceTypeDefinition{
		ID: "o", Name: "Outrider", Tag: "o",
		Movement: Movement{Leaps: outriderLeaps},
	})
	return &PieceSet{
		ID:            SetOverknight,
		Name:          "Overknight",
		Description:   "Redesigned knights with extra 3-square orthogonal leaps.",
		PromotionType: "q",
		Pieces:        pieces,
		Layout:        classicLayout(),
	}
}

// Bureaucrat 多一个可以走到任意空格、不能吃子、被吃后回到己方预备区的棋子
func Bureaucrat() *PieceSet {
	pieces := append(classicPieces(), PieceTypeDefinition{
		ID: "u", Name: "Bureaucrat", Tag: "u",
		Movement: Movement{AnyEmptySquare: true},
		Traits:   TraitRedeployable,
	})
	layout := classicLayout()
	layout.White = append(layout.White, Placement{Type: "u", Square: "a3"})
	layout.Black = append(layout.Black, Placement{Type: "u", Square: "h6"})
	return &PieceSet{
		ID:            SetBureaucrat,
		Name:          "The Bureaucrat",
		Description:   "Adds a redeployable bureaucrat that moves to any empty square and cannot capture.",
		PromotionType: "q",
		Pieces:        pieces,
		Layout:        layout,
	}
}

// RoyalPawns 兵可以向四个斜方向吃一格（包括后退）
func RoyalPawns() *PieceSet {
	pieces := classicPieces()
	pieces[0].Movement = Movement{Pawn: &PawnMovement{
		PawnRules: PawnRules{CaptureDirections: bishopRays},
	}}
	return &PieceSet{
		ID:            SetRoyalPawns,
		Name:          "Royal Pawns",
		Description:   "Pawns can capture one square on any diagonal, forward or backward.",
		PromotionType: "q",
		Pieces:        pieces,
		Layout:        classicLayout(),
	}
}

// Builtin 每次返回新建的内置套装
func Builtin() []*PieceSet {
	return []*PieceSet{Classic(), Overknight(), Bureaucrat(), RoyalPawns()}
}
