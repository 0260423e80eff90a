package variant

import "strings"

type CastlingRights uint8

const (
	CastlingWhiteKingside CastlingRights = 1 << iota
	CastlingWhiteQueenside
	CastlingBlackKingside
	CastlingBlackQueenside

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteKingside | CastlingWhiteQueenside | CastlingBlackKingside | CastlingBlackQueenside
)

func CastlingRight(c Color, side CastleSide) CastlingRights {
	switch {
	case c == White && side == Kingside:
		return CastlingWhiteKingside
	case c == White && side == Queenside:
		return CastlingWhiteQueenside
	case c == Black && side == Kingside:
		return CastlingBlackKingside
	case c == Black && side == Queenside:
		return CastlingBlackQueenside
	}
	return CastlingNone
}

func (cr CastlingRights) Has(right CastlingRights) bool { return right != 0 && cr&right == right }

func (cr CastlingRights) Without(right CastlingRights) CastlingRights { return cr &^ right }

func (cr CastlingRights) String() string {
	var b strings.Builder
	if cr.Has(CastlingWhiteKingside) {
		b.WriteByte('K')
	}
	if cr.Has(CastlingWhiteQueenside) {
		b.WriteByte('Q')
	}
	if cr.Has(CastlingBlackKingside) {
		b.WriteByte('k')
	}
	if cr.Has(CastlingBlackQueenside) {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func ParseCastlingRights(s string) (CastlingRights, bool) {
	if s == "-" || s == "" {
		return CastlingNone, true
	}
	var cr CastlingRights
	for _, r := range s {
		switch r {
		case 'K':
			cr |= CastlingWhiteKingside
		case 'Q':
			cr |= CastlingWhiteQueenside
		case 'k':
			cr |= CastlingBlackKingside
		case 'q':
			cr |= CastlingBlackQueenside
		default:
			return CastlingNone, false
		}
	}
	return cr, true
}

// CastlingRoute 一侧易位需要的全部格子
type CastlingRoute struct {
	Side     CastleSide
	KingFrom Square
	KingTo   Square
	RookFrom Square
	RookTo   Square
	Empty    []Square // 必须为空
	Safe     []Square // 不能被对方攻击
}

var castlingRoutes = [2][2]CastlingRoute{
	White: {
		{Side: Kingside, KingFrom: 60, KingTo: 62, RookFrom: 63, RookTo: 61, Empty: []Square{61, 62}, Safe: []Square{61, 62}},
		{Side: Queenside, KingFrom: 60, KingTo: 58, RookFrom: 56, RookTo: 59, Empty: []Square{59, 58, 57}, Safe: []Square{59, 58}},
	},
	Black: {
		{Side: Kingside, KingFrom: 4, KingTo: 6, RookFrom: 7, RookTo: 5, Empty: []Square{5, 6}, Safe: []Square{5, 6}},
		{Side: Queenside, KingFrom: 4, KingTo: 2, RookFrom: 0, RookTo: 3, Empty: []Square{3, 2, 1}, Safe: []Square{3, 2}},
	},
}

// CastlingRoutes 返回某一方两侧的易位路线
func CastlingRoutes(c Color) []CastlingRoute {
	if !c.valid() {
		return nil
	}
	return castlingRoutes[c][:]
}

// initialCastlingRights 只有王和车都在原位、且带对应特性时才给予易位权
func (s *GameState) initialCastlingRights() CastlingRights {
	var cr CastlingRights
	for _, c := range []Color{White, Black} {
		for _, route := range CastlingRoutes(c) {
			king := s.Board[route.KingFrom]
			if king.Empty() || king.Color != c || !s.HasTrait(king, TraitCastlingKing) {
				break
			}
			rook := s.Board[route.RookFrom]
			if !rook.Empty() && rook.Color == c && s.HasTrait(rook, TraitCastlingRook) {
				cr |= CastlingRight(c, route.Side)
			}
		}
	}
	return cr
}

func (s *GameState) revokeCastling(c Color) {
	s.Castling = s.Castling.Without(CastlingRight(c, Kingside) | CastlingRight(c, Queenside))
}

// revokeRookCastling 按车的原始格子取消对应一侧
func (s *GameState) revokeRookCastling(c Color, sq Square) {
	for _, route := range CastlingRoutes(c) {
		if route.RookFrom == sq {
			s.Castling = s.Castling.Without(CastlingRight(c, route.Side))
		}
	}
}
