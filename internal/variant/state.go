package variant

type Outcome int8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Timeout:
		return "timeout"
	}
	return "ongoing"
}

// GameState = 棋盘 + 双方预备区 + 轮次/易位权/吃过路兵 + 终局标记。
// Sets 是只读配置，Clone 时共享。
type GameState struct {
	Board     [NumSquares]Piece
	Reserves  [2][]Piece
	Turn      Color
	Castling  CastlingRights
	EnPassant Square

	GameOver bool
	Winner   Color
	Outcome  Outcome
	Ply      int

	Sets [2]*PieceSet
}

// NewGameState 按双方选定的套装摆出初始局面，白先
func NewGameState(white, black *PieceSet) *GameState {
	s := newEmptyState(white, black)
	for _, c := range []Color{White, Black} {
		s.applyLayout(c)
	}
	s.Castling = s.initialCastlingRights()
	return s
}

func newEmptyState(white, black *PieceSet) *GameState {
	return &GameState{
		Turn:      White,
		EnPassant: NoSquare,
		Winner:    NoColor,
		Sets:      [2]*PieceSet{white, black},
	}
}

// applyLayout 跳过未知种类和非法格子
func (s *GameState) applyLayout(c Color) {
	ps := s.Sets[c]
	if ps == nil {
		return
	}
	for _, pl := range ps.Layout.For(c) {
		if ps.Definition(pl.Type) == nil {
			continue
		}
		sq := ParseSquare(pl.Square)
		if sq == NoSquare {
			continue
		}
		s.Board[sq] = Piece{Color: c, Type: pl.Type}
	}
}

// Clone 深拷贝：棋盘是数组按值复制，预备区需要单独复制
func (s *GameState) Clone() *GameState {
	ns := *s
	for c := range s.Reserves {
		if s.Reserves[c] != nil {
			ns.Reserves[c] = append([]Piece(nil), s.Reserves[c]...)
		}
	}
	return &ns
}

func (s *GameState) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return s.Board[sq]
}

func (s *GameState) Set(c Color) *PieceSet {
	if !c.valid() {
		return nil
	}
	return s.Sets[c]
}

// Definition 棋子的定义总是从它所属一方的套装里查
func (s *GameState) Definition(p Piece) *PieceTypeDefinition {
	if p.Empty() {
		return nil
	}
	return s.Set(p.Color).Definition(p.Type)
}

func (s *GameState) HasTrait(p Piece, t Traits) bool {
	def := s.Definition(p)
	return def != nil && def.Traits.Has(t)
}

func (s *GameState) Reserve(c Color) []Piece {
	if !c.valid() {
		return nil
	}
	return s.Reserves[c]
}
