package httpserver

import (
	"bytes"
	"encoding/json"
	"time"

	"variantchess/internal/server/game"
	"variantchess/internal/variant"
)

// SquareRef 接受 0..63 的数字或 "e4" 这样的坐标；非法输入变成 NoSquare，不报错
type SquareRef variant.Square

func (s *SquareRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = SquareRef(variant.NoSquare)
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SquareRef(variant.ParseSquare(str))
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		*s = SquareRef(variant.NoSquare)
		return nil
	}
	*s = SquareRef(variant.SquareFromIndex(n))
	return nil
}

func (s SquareRef) Square() variant.Square { return variant.Square(s) }

// NewGame 请求：字段都可省略，默认 classic 对 classic、10 分钟 + 5 秒
type NewGameRequest struct {
	WhiteSet         string   `json:"white_set"`
	BlackSet         string   `json:"black_set"`
	BaseMinutes      *float64 `json:"base_minutes"`
	IncrementSeconds *float64 `json:"increment_seconds"`
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

// LegalMoves 请求：Square 和 Reserve 二选一
type LegalMovesRequest struct {
	GameID  string      `json:"game_id"`
	Square  *SquareRef  `json:"square"`
	Reserve *ReserveRef `json:"reserve"`
}

type ReserveRef struct {
	Color string `json:"color"`
	Index int    `json:"index"`
}

type PlayRequest struct {
	GameID string    `json:"game_id"`
	From   SquareRef `json:"from"`
	To     SquareRef `json:"to"`
}

type PlaceRequest struct {
	GameID string    `json:"game_id"`
	Color  string    `json:"color"`
	Index  int       `json:"index"`
	To     SquareRef `json:"to"`
}

type TimeoutRequest struct {
	GameID string `json:"game_id"`
	Loser  string `json:"loser"`
}

type PieceSetRequest struct {
	GameID string `json:"game_id"`
	Color  string `json:"color"`
	SetID  string `json:"set_id"`
}

// 前端用的招法结构
type MoveDTO struct {
	From         int    `json:"from"`
	To           int    `json:"to"`
	FromSquare   string `json:"from_square,omitempty"`
	ToSquare     string `json:"to_square"`
	Piece        string `json:"piece"`
	Capture      bool   `json:"capture,omitempty"`
	Promotion    string `json:"promotion,omitempty"`
	EnPassant    bool   `json:"en_passant,omitempty"`
	Castle       string `json:"castle,omitempty"`
	FromReserve  bool   `json:"from_reserve,omitempty"`
	ReserveIndex int    `json:"reserve_index,omitempty"`
}

type ClockDTO struct {
	BaseMs      int64  `json:"base_ms"`
	IncrementMs int64  `json:"increment_ms"`
	WhiteMs     int64  `json:"white_ms"`
	BlackMs     int64  `json:"black_ms"`
	Active      string `json:"active"`
	Running     bool   `json:"running"`
}

// State 返回：new_game / play / place / clock / timeout / piece_set 都用这个
type StateResponse struct {
	GameID     string              `json:"game_id"`
	Position   string              `json:"position"` // FEN-like 字符串
	ToMove     string              `json:"to_move"`
	WhiteSet   string              `json:"white_set"`
	BlackSet   string              `json:"black_set"`
	Status     string              `json:"status"`
	Outcome    string              `json:"outcome"`
	Check      bool                `json:"check"`
	GameOver   bool                `json:"game_over"`
	Winner     string              `json:"winner"`
	Ply        int                 `json:"ply"`
	Reserves   map[string][]string `json:"reserves"`
	LegalMoves []MoveDTO           `json:"legal_moves"`
	LastMove   *MoveDTO            `json:"last_move,omitempty"`
	Clock      ClockDTO            `json:"clock"`
}

type LegalMovesResponse struct {
	Moves []MoveDTO `json:"moves"`
}

type PieceDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Tag    string   `json:"tag"`
	Traits []string `json:"traits"`
}

type PieceSetDTO struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	PromotionType string     `json:"promotion_type,omitempty"`
	Pieces        []PieceDTO `json:"pieces"`
}

func moveToDTO(m variant.Move) MoveDTO {
	d := MoveDTO{
		From:        int(m.From),
		To:          int(m.To),
		ToSquare:    m.To.Algebraic(),
		Piece:       string(m.Piece.Type),
		Capture:     m.IsCapture(),
		Promotion:   string(m.Promotion),
		EnPassant:   m.EnPassant,
		FromReserve: m.FromReserve,
	}
	if m.FromReserve {
		d.ReserveIndex = m.ReserveIndex
	} else {
		d.FromSquare = m.From.Algebraic()
	}
	if m.Castle != variant.NoCastle {
		d.Castle = m.Castle.String()
	}
	return d
}

func movesToDTO(ms []variant.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func clockToDTO(c *game.Clock, now time.Time) ClockDTO {
	return ClockDTO{
		BaseMs:      c.Base.Milliseconds(),
		IncrementMs: c.Increment.Milliseconds(),
		WhiteMs:     c.Remaining(variant.White, now).Milliseconds(),
		BlackMs:     c.Remaining(variant.Black, now).Milliseconds(),
		Active:      c.Active().String(),
		Running:     c.Running(),
	}
}

func stateToDTO(g *game.Session, now time.Time) StateResponse {
	st := g.State
	resp := StateResponse{
		GameID:     g.ID,
		Position:   st.Encode(),
		ToMove:     st.Turn.String(),
		WhiteSet:   g.WhiteSet,
		BlackSet:   g.BlackSet,
		Status:     st.StatusText(),
		Outcome:    st.Outcome.String(),
		Check:      !st.GameOver && st.IsInCheck(st.Turn),
		GameOver:   st.GameOver,
		Winner:     st.Winner.String(),
		Ply:        st.Ply,
		Reserves:   map[string][]string{"w": {}, "b": {}},
		LegalMoves: []MoveDTO{},
		Clock:      clockToDTO(g.Clock, now),
	}
	for _, c := range []variant.Color{variant.White, variant.Black} {
		for _, pc := range st.Reserve(c) {
			resp.Reserves[c.String()] = append(resp.Reserves[c.String()], string(pc.Type))
		}
	}
	if !st.GameOver {
		resp.LegalMoves = movesToDTO(st.AllLegalMoves(st.Turn))
	}
	if g.LastMove != nil {
		lm := moveToDTO(*g.LastMove)
		resp.LastMove = &lm
	}
	return resp
}

func pieceSetToDTO(ps *variant.PieceSet) PieceSetDTO {
	d := PieceSetDTO{
		ID:            ps.ID,
		Name:          ps.Name,
		Description:   ps.Description,
		PromotionType: string(ps.PromotionType),
		Pieces:        make([]PieceDTO, 0, len(ps.Pieces)),
	}
	for _, def := range ps.Pieces {
		traits := def.Traits.Names()
		if traits == nil {
			traits = []string{}
		}
		d.Pieces = append(d.Pieces, PieceDTO{ID: string(def.ID), Name: def.Name, Tag: def.Tag, Traits: traits})
	}
	return d
}
