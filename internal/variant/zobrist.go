package variant

import "sync"

const (
	zobristPieceTypes = 26 // 棋子 id 是 a-z 单个字母
	zobristReserveMax = 16
)

var (
	zobristOnce sync.Once

	zobristPieces    [2][zobristPieceTypes][NumSquares]uint64
	zobristReserves  [2][zobristPieceTypes][zobristReserveMax]uint64
	zobristCastling  [16]uint64
	zobristEnPassant [NumSquares]uint64
	zobristSide      uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for pt := 0; pt < zobristPieceTypes; pt++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][pt][sq] = next()
				}
				for n := 0; n < zobristReserveMax; n++ {
					zobristReserves[side][pt][n] = next()
				}
			}
		}
		for i := range zobristCastling {
			zobristCastling[i] = next()
		}
		for sq := range zobristEnPassant {
			zobristEnPassant[sq] = next()
		}
		zobristSide = next()
	})
}

func pieceTypeIndex(pt PieceType) int {
	if len(pt) != 1 || pt[0] < 'a' || pt[0] > 'z' {
		return -1
	}
	return int(pt[0] - 'a')
}

func pieceHashKey(pc Piece, sq Square) uint64 {
	if pc.Empty() || !pc.Color.valid() || !sq.Valid() {
		return 0
	}
	pt := pieceTypeIndex(pc.Type)
	if pt < 0 {
		return 0
	}
	return zobristPieces[pc.Color][pt][sq]
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希：棋盘、轮次、易位权、过路兵格、预备区各类棋子的数量
func (s *GameState) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for sq, pc := range s.Board {
		if pc.Empty() {
			continue
		}
		h ^= pieceHashKey(pc, Square(sq))
	}
	for c := range s.Reserves {
		var counts [zobristPieceTypes]int
		for _, pc := range s.Reserves[c] {
			if pt := pieceTypeIndex(pc.Type); pt >= 0 {
				counts[pt]++
			}
		}
		for pt, n := range counts {
			if n > 0 {
				h ^= zobristReserves[c][pt][min(n, zobristReserveMax)-1]
			}
		}
	}
	h ^= zobristCastling[s.Castling&CastlingAll]
	if s.EnPassant.Valid() {
		h ^= zobristEnPassant[s.EnPassant]
	}
	if s.Turn == Black {
		h ^= zobristSide
	}
	return h
}
