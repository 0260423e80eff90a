package variant

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Encode 输出 FEN-like 串：8行用“/”隔开，白方大写、黑方小写（字母即棋子 id），
// 预备区紧跟棋盘写在 [...] 里（为空时省略），之后是轮次、易位权、过路兵格、半回合（恒为0）和回合数。
func (s *GameState) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := s.Board[indexOf(r, c)]
			if pc.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceLetter(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	if len(s.Reserves[White])+len(s.Reserves[Black]) > 0 {
		sb.WriteByte('[')
		for _, c := range []Color{White, Black} {
			for _, pc := range s.Reserves[c] {
				sb.WriteRune(pieceLetter(pc))
			}
		}
		sb.WriteByte(']')
	}
	turn := s.Turn
	if !turn.valid() {
		turn = White
	}
	fmt.Fprintf(&sb, " %s %s %s 0 %d", turn, s.Castling, s.EnPassant, s.Ply/2+1)
	return sb.String()
}

func pieceLetter(pc Piece) rune {
	if pc.Type == "" {
		return '?'
	}
	r := rune(pc.Type[0])
	if pc.Color == White {
		return unicode.ToUpper(r)
	}
	return r
}

// DecodeState 按双方套装解析 Encode 的输出，也接受标准 FEN。
// 棋子字母必须在对应一方的套装里，预备区只能放可再部署的棋子。
func DecodeState(fen string, white, black *PieceSet) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: need at least board and turn", ErrInvalidFEN)
	}
	s := newEmptyState(white, black)

	board, reserves := parts[0], ""
	if i := strings.IndexByte(board, '['); i >= 0 {
		if !strings.HasSuffix(board, "]") {
			return nil, fmt.Errorf("%w: unterminated reserve field", ErrInvalidFEN)
		}
		board, reserves = board[:i], board[i+1:len(board)-1]
	}

	rows := strings.Split(board, "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidFEN, Rows, len(rows))
	}
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, fmt.Errorf("%w: row %d too long", ErrInvalidFEN, r+1)
			}
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			pc, ok := s.letterToPiece(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			s.Board[indexOf(r, c)] = pc
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrInvalidFEN, r+1, c)
		}
	}

	for _, ch := range reserves {
		pc, ok := s.letterToPiece(ch)
		if !ok || !s.HasTrait(pc, TraitRedeployable) {
			return nil, fmt.Errorf("%w: bad reserve piece %q", ErrInvalidFEN, ch)
		}
		s.Reserves[pc.Color] = append(s.Reserves[pc.Color], pc)
	}

	turn, ok := ParseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("%w: turn %q", ErrInvalidFEN, parts[1])
	}
	s.Turn = turn

	if len(parts) > 2 {
		cr, ok := ParseCastlingRights(parts[2])
		if !ok {
			return nil, fmt.Errorf("%w: castling %q", ErrInvalidFEN, parts[2])
		}
		// 王车不在原位的易位权直接丢掉
		s.Castling = cr & s.initialCastlingRights()
	}
	if len(parts) > 3 && parts[3] != "-" {
		ep := SquareFromAlgebraic(parts[3])
		if ep == NoSquare {
			return nil, fmt.Errorf("%w: en passant %q", ErrInvalidFEN, parts[3])
		}
		s.EnPassant = ep
	}
	if len(parts) > 5 {
		full, err := strconv.Atoi(parts[5])
		if err != nil || full < 1 {
			return nil, fmt.Errorf("%w: move number %q", ErrInvalidFEN, parts[5])
		}
		s.Ply = (full - 1) * 2
		if s.Turn == Black {
			s.Ply++
		}
	}
	return s, nil
}

func (s *GameState) letterToPiece(ch rune) (Piece, bool) {
	c := Black
	if unicode.IsUpper(ch) {
		c = White
	}
	pt := PieceType(string(unicode.ToLower(ch)))
	if s.Set(c).Definition(pt) == nil {
		return Piece{}, false
	}
	return Piece{Color: c, Type: pt}, true
}
