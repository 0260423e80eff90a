package variant

import "strings"

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String 返回 FEN 里使用的单字母：w / b
func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

// Name 用于状态文本
func (c Color) Name() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "Nobody"
}

func (c Color) valid() bool { return c == White || c == Black }

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return White, true
	case "b", "black":
		return Black, true
	}
	return NoColor, false
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	if string(text) == "-" || len(text) == 0 {
		*c = NoColor
		return nil
	}
	parsed, ok := ParseColor(string(text))
	if !ok {
		return ErrInvalidColor
	}
	*c = parsed
	return nil
}

// PieceType 是棋子种类的标识（单个小写字母，如 p / n / u），由棋子套装定义
type PieceType string

// Piece 零值表示空格
type Piece struct {
	Color Color     `json:"color"`
	Type  PieceType `json:"type"`
}

func (p Piece) Empty() bool { return p.Type == "" }

type CastleSide int8

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

func (cs CastleSide) String() string {
	switch cs {
	case Kingside:
		return "kingside"
	case Queenside:
		return "queenside"
	}
	return ""
}

// Move 同时描述棋盘走子与预备区落子（FromReserve=true 时 From 为 NoSquare）
type Move struct {
	From  Square `json:"from"`
	To    Square `json:"to"`
	Piece Piece  `json:"piece"`

	Captured      Piece  `json:"captured"`
	CaptureSquare Square `json:"capture_square"`

	Promotion     PieceType `json:"promotion,omitempty"`
	DoubleAdvance bool      `json:"double_advance,omitempty"`
	EnPassant     bool      `json:"en_passant,omitempty"`

	Castle   CastleSide `json:"castle,omitempty"`
	RookFrom Square     `json:"rook_from"`
	RookTo   Square     `json:"rook_to"`

	FromReserve  bool  `json:"from_reserve,omitempty"`
	ReserveColor Color `json:"reserve_color"`
	ReserveIndex int   `json:"reserve_index"`
}

func (m Move) IsCapture() bool { return !m.Captured.Empty() }

// Same 判断两步是否指向同一个用户操作（起点/预备区槽位 + 终点）
func (m Move) Same(o Move) bool {
	if m.FromReserve != o.FromReserve || m.To != o.To {
		return false
	}
	if m.FromReserve {
		return m.ReserveColor == o.ReserveColor && m.ReserveIndex == o.ReserveIndex
	}
	return m.From == o.From
}

func (m Move) String() string {
	if m.FromReserve {
		return "@" + m.To.String()
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != "" {
		s += string(m.Promotion)
	}
	return s
}
