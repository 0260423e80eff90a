package variant

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Registry 按 id 查找棋子套装；注册时先做 Validate
type Registry struct {
	sets map[string]*PieceSet
}

func NewRegistry(sets ...*PieceSet) (*Registry, error) {
	r := &Registry{sets: make(map[string]*PieceSet, len(sets))}
	for _, ps := range sets {
		if err := r.Register(ps); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// BuiltinRegistry 内置套装一定合法，这里不返回错误
func BuiltinRegistry() *Registry {
	r, err := NewRegistry(Builtin()...)
	if err != nil {
		panic("builtin piece sets: " + err.Error())
	}
	return r
}

func (r *Registry) Register(ps *PieceSet) error {
	if ps == nil {
		return fmt.Errorf("%w: nil set", ErrInvalidPieceSet)
	}
	if err := ps.Validate(); err != nil {
		return err
	}
	if _, dup := r.sets[ps.ID]; dup {
		return fmt.Errorf("%w: duplicate set id %q", ErrInvalidPieceSet, ps.ID)
	}
	r.sets[ps.ID] = ps
	return nil
}

func (r *Registry) Get(id string) (*PieceSet, error) {
	ps, ok := r.sets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPieceSet, id)
	}
	return ps, nil
}

// IDs 按字母序返回
func (r *Registry) IDs() []string {
	ids := maps.Keys(r.sets)
	slices.Sort(ids)
	return ids
}

func (r *Registry) List() []*PieceSet {
	ids := r.IDs()
	out := make([]*PieceSet, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.sets[id])
	}
	return out
}

// LoadPieceSet 从 JSON 读取一个套装定义
func LoadPieceSet(rd io.Reader) (*PieceSet, error) {
	dec := json.NewDecoder(rd)
	dec.DisallowUnknownFields()
	var ps PieceSet
	if err := dec.Decode(&ps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPieceSet, err)
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return &ps, nil
}

// LoadDir 把目录下所有 *.json 套装注册进来
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			return n, err
		}
		ps, err := LoadPieceSet(f)
		f.Close()
		if err != nil {
			return n, fmt.Errorf("%s: %w", path, err)
		}
		if err := r.Register(ps); err != nil {
			return n, fmt.Errorf("%s: %w", path, err)
		}
		n++
	}
	return n, nil
}
