package variant

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinSetsValidate(t *testing.T) {
	for _, ps := range Builtin() {
		t.Run(ps.ID, func(t *testing.T) {
			if err := ps.Validate(); err != nil {
				t.Fatalf("validate: %v", err)
			}
			if got, ok := ps.PromotionTarget(); !ok || got != "q" {
				t.Fatalf("promotion target: got=%q ok=%v", got, ok)
			}
		})
	}
}

func TestBuiltinRegistryIDsSorted(t *testing.T) {
	got := BuiltinRegistry().IDs()
	want := []string{SetBureaucrat, SetClassic, SetOverknight, SetRoyalPawns}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestRegistryRejectsDuplicatesAndUnknown(t *testing.T) {
	r := BuiltinRegistry()
	if err := r.Register(Classic()); !errors.Is(err, ErrInvalidPieceSet) {
		t.Fatalf("duplicate: got=%v want=%v", err, ErrInvalidPieceSet)
	}
	if _, err := r.Get("nope"); !errors.Is(err, ErrUnknownPieceSet) {
		t.Fatalf("unknown: got=%v want=%v", err, ErrUnknownPieceSet)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ps *PieceSet)
		want   error
	}{
		{"empty id", func(ps *PieceSet) { ps.ID = "" }, ErrInvalidPieceSet},
		{"long piece id", func(ps *PieceSet) { ps.Pieces[1].ID = "nn" }, ErrInvalidPieceSet},
		{"upper piece id", func(ps *PieceSet) { ps.Pieces[1].ID = "N" }, ErrInvalidPieceSet},
		{"duplicate piece", func(ps *PieceSet) { ps.Pieces[1].ID = "b" }, ErrInvalidPieceSet},
		{"pawn direction", func(ps *PieceSet) { ps.Pieces[0].Movement.Pawn.Forward = 2 }, ErrInvalidPieceSet},
		{"missing promotion type", func(ps *PieceSet) { ps.PromotionType = "z" }, ErrInvalidPieceSet},
		{"ambiguous promotion", func(ps *PieceSet) { ps.PromotionType = "" }, ErrAmbiguousPromotion},
		{"unknown layout piece", func(ps *PieceSet) { ps.Layout.White[0].Type = "z" }, ErrInvalidPieceSet},
		{"bad layout square", func(ps *PieceSet) { ps.Layout.Black[0].Square = "j9" }, ErrInvalidPieceSet},
		{"square used twice", func(ps *PieceSet) { ps.Layout.White[1].Square = ps.Layout.White[0].Square }, ErrInvalidPieceSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := Classic()
			tt.mutate(ps)
			if err := ps.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("got=%v want=%v", err, tt.want)
			}
		})
	}
}

func TestPromotionTargetFallback(t *testing.T) {
	ps := Classic()
	ps.PromotionType = ""
	// 歧义套装按声明顺序取第一个非兵种类
	if got, ok := ps.PromotionTarget(); !ok || got != "n" {
		t.Fatalf("got=%q ok=%v want=n", got, ok)
	}

	ps.Pieces = []PieceTypeDefinition{ps.Pieces[0], ps.Pieces[4], ps.Pieces[5]}
	ps.Layout = Layout{}
	if got, ok := ps.PromotionTarget(); !ok || got != "q" {
		t.Fatalf("unique candidate: got=%q ok=%v want=q", got, ok)
	}
	if err := ps.Validate(); err != nil {
		t.Fatalf("single candidate set should validate: %v", err)
	}
}

const camelSetJSON = `{
  "id": "camels",
  "name": "Camels",
  "description": "Knights replaced by (3,1) camels, pawns without a double step.",
  "promotion_type": "q",
  "pieces": [
    {"id": "p", "name": "Pawn", "tag": "p", "movement": {"pawn": {"start_rows": []}}, "traits": ["pawn"]},
    {"id": "c", "name": "Camel", "tag": "c", "movement": {"leaps": [[-3,-1],[-3,1],[3,-1],[3,1],[-1,-3],[-1,3],[1,-3],[1,3]]}, "traits": []},
    {"id": "w", "name": "Wazir", "tag": "w", "movement": {"rays": [[-1,0],[1,0],[0,-1],[0,1]], "max_ray_steps": 1}, "traits": []},
    {"id": "q", "name": "Queen", "tag": "q", "movement": {"rays": [[-1,0],[1,0],[0,-1],[0,1],[-1,-1],[-1,1],[1,-1],[1,1]]}, "traits": []},
    {"id": "k", "name": "King", "tag": "k", "movement": {"leaps": [[-1,-1],[-1,0],[-1,1],[0,-1],[0,1],[1,-1],[1,0],[1,1]]}, "traits": ["royal"]}
  ],
  "layout": {
    "w": [{"type": "k", "square": "e1"}, {"type": "c", "square": "b1"}, {"type": "w", "square": "d4"}, {"type": "p", "square": "e2"}],
    "b": [{"type": "k", "square": "e8"}, {"type": "q", "square": "3"}]
  }
}`

func TestLoadPieceSetJSON(t *testing.T) {
	ps, err := LoadPieceSet(strings.NewReader(camelSetJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ps.Definition("k").Traits != TraitRoyal {
		t.Fatalf("king traits: got=%v", ps.Definition("k").Traits.Names())
	}
	s := NewGameState(ps, ps)

	camel := s.LegalMoves(mustSquare(t, "b1"))
	// e2 上是己方兵
	for _, to := range []string{"a4", "c4"} {
		if _, ok := findMove(camel, mustSquare(t, to)); !ok {
			t.Fatalf("camel should reach %s: %v", to, camel)
		}
	}
	if len(camel) != 2 {
		t.Fatalf("camel moves: got=%d want=2 (%v)", len(camel), camel)
	}

	if got := len(s.LegalMoves(mustSquare(t, "d4"))); got != 4 {
		t.Fatalf("wazir moves: got=%d want=4", got)
	}
	if got := len(s.LegalMoves(mustSquare(t, "e2"))); got != 1 {
		t.Fatalf("pawn without start rows: got=%d want=1", got)
	}
	if s.Castling != CastlingNone {
		t.Fatalf("no castling pieces, rights: got=%v", s.Castling)
	}
}

func TestLoadPieceSetRejectsUnknownFields(t *testing.T) {
	_, err := LoadPieceSet(strings.NewReader(`{"id": "x", "speed": 3}`))
	if !errors.Is(err, ErrInvalidPieceSet) {
		t.Fatalf("got=%v want=%v", err, ErrInvalidPieceSet)
	}
	_, err = LoadPieceSet(strings.NewReader(`{"id": "x", "pieces": [{"id": "a", "traits": ["flying"]}]}`))
	if !errors.Is(err, ErrInvalidPieceSet) {
		t.Fatalf("got=%v want=%v", err, ErrInvalidPieceSet)
	}
}

func TestRegistryLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "camels.json"), []byte(camelSetJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := BuiltinRegistry()
	n, err := r.LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if n != 1 {
		t.Fatalf("loaded: got=%d want=1", n)
	}
	if _, err := r.Get("camels"); err != nil {
		t.Fatalf("get camels: %v", err)
	}
}

func TestPieceSetJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Bureaucrat())
	if err != nil {
		t.Fatal(err)
	}
	ps, err := LoadPieceSet(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !ps.Definition("u").Traits.Has(TraitRedeployable) || !ps.Definition("u").Movement.AnyEmptySquare {
		t.Fatalf("bureaucrat definition lost: %+v", ps.Definition("u"))
	}
}
