package variant

import (
	"encoding/json"
	"fmt"
)

// Offset = {行偏移, 列偏移}，行向下为正
type Offset [2]int

type Traits uint8

const (
	TraitRoyal Traits = 1 << iota
	TraitCastlingKing
	TraitCastlingRook
	TraitPawn
	TraitRedeployable

	NoTraits Traits = 0
)

var traitNames = []struct {
	t    Traits
	name string
}{
	{TraitRoyal, "royal"},
	{TraitCastlingKing, "castling-king"},
	{TraitCastlingRook, "castling-rook"},
	{TraitPawn, "pawn"},
	{TraitRedeployable, "redeployable"},
}

func (t Traits) Has(want Traits) bool { return t&want == want && want != 0 }

func (t Traits) Names() []string {
	var out []string
	for _, tn := range traitNames {
		if t.Has(tn.t) {
			out = append(out, tn.name)
		}
	}
	return out
}

func (t Traits) MarshalJSON() ([]byte, error) {
	names := t.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

func (t *Traits) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out Traits
	for _, n := range names {
		found := false
		for _, tn := range traitNames {
			if tn.name == n {
				out |= tn.t
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown trait %q", n)
		}
	}
	*t = out
	return nil
}

// PawnRules 里未设置的字段（0 / nil）回退到标准国际象棋
type PawnRules struct {
	Forward           int      `json:"forward,omitempty"`
	StartRows         []int    `json:"start_rows,omitempty"`
	PromotionRows     []int    `json:"promotion_rows,omitempty"`
	CaptureDirections []Offset `json:"capture_directions,omitempty"`
}

// PawnMovement：内嵌的 PawnRules 对双方生效，White/Black 可以按颜色覆盖
type PawnMovement struct {
	PawnRules
	White *PawnRules `json:"white,omitempty"`
	Black *PawnRules `json:"black,omitempty"`
}

func (pm *PawnMovement) colorRules(c Color) *PawnRules {
	if c == White {
		return pm.White
	}
	return pm.Black
}

func (pm *PawnMovement) forward(c Color) int {
	if r := pm.colorRules(c); r != nil && r.Forward != 0 {
		return r.Forward
	}
	if pm.Forward != 0 {
		return pm.Forward
	}
	if c == White {
		return -1
	}
	return 1
}

func (pm *PawnMovement) startRows(c Color) []int {
	if r := pm.colorRules(c); r != nil && r.StartRows != nil {
		return r.StartRows
	}
	if pm.StartRows != nil {
		return pm.StartRows
	}
	if c == White {
		return []int{6}
	}
	return []int{1}
}

func (pm *PawnMovement) promotionRows(c Color) []int {
	if r := pm.colorRules(c); r != nil && r.PromotionRows != nil {
		return r.PromotionRows
	}
	if pm.PromotionRows != nil {
		return pm.PromotionRows
	}
	if c == White {
		return []int{0}
	}
	return []int{7}
}

func (pm *PawnMovement) captureDirections(c Color) []Offset {
	if r := pm.colorRules(c); r != nil && r.CaptureDirections != nil {
		return r.CaptureDirections
	}
	if pm.CaptureDirections != nil {
		return pm.CaptureDirections
	}
	dir := pm.forward(c)
	return []Offset{{dir, -1}, {dir, 1}}
}

// Movement 是若干走法能力的组合，生成器按出现的能力逐一生成
type Movement struct {
	Leaps          []Offset      `json:"leaps,omitempty"`
	Rays           []Offset      `json:"rays,omitempty"`
	MaxRaySteps    int           `json:"max_ray_steps,omitempty"` // 0 = 不限（8）
	Pawn           *PawnMovement `json:"pawn,omitempty"`
	AnyEmptySquare bool          `json:"any_empty_square,omitempty"`
	Castling       bool          `json:"castling,omitempty"`
}

func (m Movement) raySteps() int {
	if m.MaxRaySteps <= 0 {
		return Rows
	}
	return m.MaxRaySteps
}

type PieceTypeDefinition struct {
	ID       PieceType `json:"id"`
	Name     string    `json:"name"`
	Tag      string    `json:"tag"`
	Movement Movement  `json:"movement"`
	Traits   Traits    `json:"traits"`
}

type Placement struct {
	Type   PieceType `json:"type"`
	Square string    `json:"square"` // 代数坐标或 0..63
}

type Layout struct {
	White []Placement `json:"w"`
	Black []Placement `json:"b"`
}

func (l Layout) For(c Color) []Placement {
	if c == White {
		return l.White
	}
	return l.Black
}

// PieceSet 选定后只读；Pieces 的顺序有意义（升变回退按声明顺序取）
type PieceSet struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	PromotionType PieceType             `json:"promotion_type,omitempty"`
	Pieces        []PieceTypeDefinition `json:"pieces"`
	Layout        Layout                `json:"layout"`
}

func (ps *PieceSet) Definition(t PieceType) *PieceTypeDefinition {
	if ps == nil {
		return nil
	}
	for i := range ps.Pieces {
		if ps.Pieces[i].ID == t {
			return &ps.Pieces[i]
		}
	}
	return nil
}

func (ps *PieceSet) promotionCandidates() []PieceType {
	var out []PieceType
	for _, def := range ps.Pieces {
		if def.Traits.Has(TraitPawn) || def.Traits.Has(TraitRoyal) {
			continue
		}
		out = append(out, def.ID)
	}
	return out
}

// PromotionTarget 返回兵升变的目标种类。
// 优先使用 PromotionType；否则取唯一的非兵非王种类；
// 未经 Validate 的歧义套装退回到声明顺序里第一个非兵种类。
func (ps *PieceSet) PromotionTarget() (PieceType, bool) {
	if ps == nil {
		return "", false
	}
	if ps.PromotionType != "" && ps.Definition(ps.PromotionType) != nil {
		return ps.PromotionType, true
	}
	if c := ps.promotionCandidates(); len(c) == 1 {
		return c[0], true
	}
	for _, def := range ps.Pieces {
		if !def.Traits.Has(TraitPawn) {
			return def.ID, true
		}
	}
	return "", false
}

func validPieceID(t PieceType) bool {
	return len(t) == 1 && t[0] >= 'a' && t[0] <= 'z'
}

// Validate 检查套装是否能被无歧义地使用
func (ps *PieceSet) Validate() error {
	if ps.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidPieceSet)
	}
	seen := make(map[PieceType]bool, len(ps.Pieces))
	hasPawn := false
	for _, def := range ps.Pieces {
		if !validPieceID(def.ID) {
			return fmt.Errorf("%w: set %q: piece id %q must be one lowercase letter", ErrInvalidPieceSet, ps.ID, def.ID)
		}
		if seen[def.ID] {
			return fmt.Errorf("%w: set %q: duplicate piece id %q", ErrInvalidPieceSet, ps.ID, def.ID)
		}
		seen[def.ID] = true
		if def.Traits.Has(TraitPawn) {
			hasPawn = true
		}
		if p := def.Movement.Pawn; p != nil {
			for _, c := range []Color{White, Black} {
				if f := p.forward(c); f != 1 && f != -1 {
					return fmt.Errorf("%w: set %q: piece %q pawn direction %d", ErrInvalidPieceSet, ps.ID, def.ID, f)
				}
			}
		}
	}
	if ps.PromotionType != "" && !seen[ps.PromotionType] {
		return fmt.Errorf("%w: set %q: promotion type %q not defined", ErrInvalidPieceSet, ps.ID, ps.PromotionType)
	}
	if hasPawn && ps.PromotionType == "" && len(ps.promotionCandidates()) > 1 {
		return fmt.Errorf("%w: set %q", ErrAmbiguousPromotion, ps.ID)
	}
	for _, c := range []Color{White, Black} {
		occupied := make(map[Square]bool)
		for _, pl := range ps.Layout.For(c) {
			if !seen[pl.Type] {
				return fmt.Errorf("%w: set %q: unknown piece %q in %s layout", ErrInvalidPieceSet, ps.ID, pl.Type, c)
			}
			sq := ParseSquare(pl.Square)
			if sq == NoSquare {
				return fmt.Errorf("%w: set %q: bad square %q in %s layout", ErrInvalidPieceSet, ps.ID, pl.Square, c)
			}
			if occupied[sq] {
				return fmt.Errorf("%w: set %q: square %s used twice in %s layout", ErrInvalidPieceSet, ps.ID, sq, c)
			}
			occupied[sq] = true
		}
	}
	return nil
}
