package game

import (
	"errors"
	"fmt"
	"time"

	"variantchess/internal/storage"
	"variantchess/internal/variant"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTimeout      = errors.New("time expired")
)

// Session 一局棋：实时的 GameState + 时钟。只能在 Manager.Do 里修改。
type Session struct {
	ID        string
	WhiteSet  string
	BlackSet  string
	State     *variant.GameState
	Clock     *Clock
	LastMove  *variant.Move
	Started   bool // 走过棋或启动过时钟
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Play 走子。时钟在走棋前结算，走棋方超时则判负，这步不执行。
func (s *Session) Play(from, to variant.Square, now time.Time) (variant.Move, error) {
	return s.commit(variant.Move{From: from, To: to, ReserveColor: variant.NoColor, ReserveIndex: -1}, now)
}

func (s *Session) Place(color variant.Color, index int, to variant.Square, now time.Time) (variant.Move, error) {
	return s.commit(variant.Move{From: variant.NoSquare, To: to, FromReserve: true, ReserveColor: color, ReserveIndex: index}, now)
}

func (s *Session) commit(m variant.Move, now time.Time) (variant.Move, error) {
	if s.State.GameOver {
		return variant.Move{}, variant.ErrGameOver
	}
	mover := s.State.Turn
	if s.Clock.Running() {
		s.Clock.Consume(now)
		if s.Clock.Remaining(mover, now) <= 0 {
			s.timeout(mover, now)
			return variant.Move{}, ErrTimeout
		}
	}
	played, err := s.State.Commit(m)
	if err != nil {
		return variant.Move{}, err
	}
	s.Started = true
	s.LastMove = &played
	s.Clock.OnMoveCommitted(mover, s.State.Turn, now)
	if s.State.GameOver {
		s.Clock.Stop(now)
	}
	return played, nil
}

// ToggleClock 启动或暂停时钟，返回切换后是否在走
func (s *Session) ToggleClock(now time.Time) (bool, error) {
	if s.State.GameOver {
		return false, variant.ErrGameOver
	}
	if s.Clock.Running() {
		s.Clock.Consume(now)
		if s.Clock.Expired(now) {
			s.timeout(s.Clock.Active(), now)
			return false, ErrTimeout
		}
		s.Clock.Stop(now)
		return false, nil
	}
	s.Started = true
	s.Clock.Start(s.State.Turn, now)
	return true, nil
}

// Timeout 外部通知某一方超时
func (s *Session) Timeout(loser variant.Color, now time.Time) error {
	if s.State.GameOver {
		return variant.ErrGameOver
	}
	if loser != variant.White && loser != variant.Black {
		return variant.ErrInvalidColor
	}
	s.timeout(loser, now)
	return nil
}

func (s *Session) timeout(loser variant.Color, now time.Time) {
	s.Clock.Stop(now)
	s.State.Timeout(loser)
}

// checkExpired 供定时检查：走棋方时间用完就判负
func (s *Session) checkExpired(now time.Time) bool {
	if s.State.GameOver || !s.Clock.Expired(now) {
		return false
	}
	s.timeout(s.Clock.Active(), now)
	return true
}

// ReplacePieceSet 开局前换套装，局面重新摆
func (s *Session) ReplacePieceSet(color variant.Color, set *variant.PieceSet) error {
	if s.Started {
		return variant.ErrGameStarted
	}
	next, err := s.State.ReplacePieceSet(color, set)
	if err != nil {
		return err
	}
	s.State = next
	if color == variant.White {
		s.WhiteSet = set.ID
	} else {
		s.BlackSet = set.ID
	}
	return nil
}

func (s *Session) Record() *storage.GameRecord {
	return &storage.GameRecord{
		ID:        s.ID,
		WhiteSet:  s.WhiteSet,
		BlackSet:  s.BlackSet,
		FEN:       s.State.Encode(),
		GameOver:  s.State.GameOver,
		Outcome:   s.State.Outcome.String(),
		Winner:    s.State.Winner.String(),
		Ply:       s.State.Ply,
		Started:   s.Started,
		Clock:     s.Clock.Record(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func parseOutcome(s string) variant.Outcome {
	switch s {
	case "checkmate":
		return variant.Checkmate
	case "stalemate":
		return variant.Stalemate
	case "timeout":
		return variant.Timeout
	}
	return variant.Ongoing
}

// sessionFromRecord 按快照重建；套装必须还在注册表里
func sessionFromRecord(rec *storage.GameRecord, sets *variant.Registry) (*Session, error) {
	white, err := sets.Get(rec.WhiteSet)
	if err != nil {
		return nil, err
	}
	black, err := sets.Get(rec.BlackSet)
	if err != nil {
		return nil, err
	}
	st, err := variant.DecodeState(rec.FEN, white, black)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", rec.ID, err)
	}
	st.Ply = rec.Ply
	if rec.GameOver {
		st.GameOver = true
		st.Outcome = parseOutcome(rec.Outcome)
		st.Winner, _ = variant.ParseColor(rec.Winner)
	}
	return &Session{
		ID:        rec.ID,
		WhiteSet:  rec.WhiteSet,
		BlackSet:  rec.BlackSet,
		State:     st,
		Clock:     clockFromRecord(rec.Clock),
		Started:   rec.Started || rec.Ply > 0,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
