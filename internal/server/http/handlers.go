package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"variantchess/internal/server/game"
	"variantchess/internal/storage"
	"variantchess/internal/variant"
)

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	store *storage.Store // 可以为 nil，此时没有 /api/stats
}

func NewHandler(games *game.Manager, store *storage.Store) *Handler {
	return &Handler{games: games, store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/piece_sets":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handlePieceSets(w, r)

	case "/api/stats":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleStats(w, r)

	default:
		post, ok := h.postRoutes()[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		post(w, r)
	}
}

func (h *Handler) postRoutes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/api/new_game":    h.handleNewGame,
		"/api/state":       h.handleState,
		"/api/legal_moves": h.handleLegalMoves,
		"/api/play":        h.handlePlay,
		"/api/place":       h.handlePlace,
		"/api/clock":       h.handleClock,
		"/api/timeout":     h.handleTimeout,
		"/api/piece_set":   h.handlePieceSet,
		"/api/delete_game": h.handleDeleteGame,
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

// writeError 把领域错误映射成状态码
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		code = http.StatusNotFound
	case errors.Is(err, variant.ErrIllegalMove),
		errors.Is(err, variant.ErrInvalidColor),
		errors.Is(err, variant.ErrUnknownPieceSet):
		code = http.StatusBadRequest
	case errors.Is(err, variant.ErrGameOver),
		errors.Is(err, variant.ErrGameStarted),
		errors.Is(err, game.ErrTimeout):
		code = http.StatusConflict
	}
	if code == http.StatusInternalServerError {
		log.Println("api error:", err)
	}
	http.Error(w, err.Error(), code)
}

func parseColor(s string) (variant.Color, error) {
	c, ok := variant.ParseColor(s)
	if !ok {
		return variant.NoColor, variant.ErrInvalidColor
	}
	return c, nil
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	if req.WhiteSet == "" {
		req.WhiteSet = variant.SetClassic
	}
	if req.BlackSet == "" {
		req.BlackSet = variant.SetClassic
	}
	base, inc := -1.0, -1.0
	if req.BaseMinutes != nil {
		base = *req.BaseMinutes
	}
	if req.IncrementSeconds != nil {
		inc = *req.IncrementSeconds
	}

	g, err := h.games.NewGame(req.WhiteSet, req.BlackSet, game.ClockConfigFromInput(base, inc))
	if err != nil {
		writeError(w, err)
		return
	}
	h.respondState(w, g.ID)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondState(w, req.GameID)
}

// respondState 在读锁里把局面序列化出去
func (h *Handler) respondState(w http.ResponseWriter, id string) {
	var resp StateResponse
	err := h.games.View(id, func(g *game.Session) error {
		resp = stateToDTO(g, h.games.Now())
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var req LegalMovesRequest
	if !decode(w, r, &req) {
		return
	}
	var resp LegalMovesResponse
	err := h.games.View(req.GameID, func(g *game.Session) error {
		if g.State.GameOver {
			resp.Moves = []MoveDTO{}
			return nil
		}
		switch {
		case req.Reserve != nil:
			c, err := parseColor(req.Reserve.Color)
			if err != nil {
				return err
			}
			resp.Moves = movesToDTO(g.State.LegalReserveMoves(c, req.Reserve.Index))
		case req.Square != nil:
			resp.Moves = movesToDTO(g.State.LegalMoves(req.Square.Square()))
		default:
			resp.Moves = movesToDTO(g.State.AllLegalMoves(g.State.Turn))
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}
	h.mutate(w, req.GameID, func(g *game.Session) error {
		_, err := g.Play(req.From.Square(), req.To.Square(), h.games.Now())
		return err
	})
}

func (h *Handler) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := parseColor(req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutate(w, req.GameID, func(g *game.Session) error {
		_, err := g.Place(c, req.Index, req.To.Square(), h.games.Now())
		return err
	})
}

func (h *Handler) handleClock(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	h.mutate(w, req.GameID, func(g *game.Session) error {
		_, err := g.ToggleClock(h.games.Now())
		return err
	})
}

func (h *Handler) handleTimeout(w http.ResponseWriter, r *http.Request) {
	var req TimeoutRequest
	if !decode(w, r, &req) {
		return
	}
	loser, err := parseColor(req.Loser)
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutate(w, req.GameID, func(g *game.Session) error {
		return g.Timeout(loser, h.games.Now())
	})
}

func (h *Handler) handlePieceSet(w http.ResponseWriter, r *http.Request) {
	var req PieceSetRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := parseColor(req.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	set, err := h.games.Sets().Get(req.SetID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.mutate(w, req.GameID, func(g *game.Session) error {
		return g.ReplacePieceSet(c, set)
	})
}

func (h *Handler) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.games.Delete(req.GameID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"deleted": req.GameID})
}

// mutate 执行修改；超时判负也算一次成功的状态变化，照常返回局面
func (h *Handler) mutate(w http.ResponseWriter, id string, fn func(g *game.Session) error) {
	var resp StateResponse
	err := h.games.Do(id, func(g *game.Session) error {
		err := fn(g)
		if err == nil || errors.Is(err, game.ErrTimeout) {
			resp = stateToDTO(g, h.games.Now())
		}
		return err
	})
	if err != nil && !errors.Is(err, game.ErrTimeout) {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handlePieceSets(w http.ResponseWriter, r *http.Request) {
	sets := h.games.Sets().List()
	out := make([]PieceSetDTO, 0, len(sets))
	for _, ps := range sets {
		out = append(out, pieceSetToDTO(ps))
	}
	writeJSON(w, out)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "no store configured", http.StatusNotFound)
		return
	}
	stats, err := h.store.LoadStats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stats)
}
