package variant

import (
	"strconv"
	"strings"
)

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols
)

// Square 0..63，从左上角（a8）开始按行编号；NoSquare 表示无效格
type Square int

const NoSquare Square = -1

var files = "abcdefgh"

func indexOf(row, col int) Square { return Square(row*Cols + col) }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func (s Square) Valid() bool { return s >= 0 && s < NumSquares }
func (s Square) Row() int    { return int(s) / Cols }
func (s Square) Col() int    { return int(s) % Cols }

// Rank 1..8（白方底线为 1）
func (s Square) Rank() int { return Rows - s.Row() }

func SquareFromIndex(i int) Square {
	if i < 0 || i >= NumSquares {
		return NoSquare
	}
	return Square(i)
}

func SquareFromRowCol(row, col int) Square {
	if !onBoard(row, col) {
		return NoSquare
	}
	return indexOf(row, col)
}

// SquareFromAlgebraic 解析 "e4" 这类坐标，文件字母不区分大小写；非法输入返回 NoSquare
func SquareFromAlgebraic(s string) Square {
	if len(s) != 2 {
		return NoSquare
	}
	col := strings.IndexByte(files, lower(s[0]))
	rank := int(s[1]) - '0'
	if col < 0 || rank < 1 || rank > Rows {
		return NoSquare
	}
	return indexOf(Rows-rank, col)
}

// ParseSquare 同时接受 0..63 的下标和代数坐标
func ParseSquare(s string) Square {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoSquare
	}
	if n, err := strconv.Atoi(s); err == nil {
		return SquareFromIndex(n)
	}
	return SquareFromAlgebraic(s)
}

func (s Square) Algebraic() string {
	if !s.Valid() {
		return ""
	}
	return string([]byte{files[s.Col()], byte('0' + s.Rank())})
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return s.Algebraic()
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
