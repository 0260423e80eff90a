package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"variantchess/internal/variant"
)

// TestCase 给前端 / 其他实现做走法生成对照用。
// Stage 0: Mask 标出有合法走法的起点格；Stage 1: 选中 From 后的落点格
type TestCase struct {
	WhiteSet string   `json:"white_set"`
	BlackSet string   `json:"black_set"`
	FEN      string   `json:"fen"`
	Stage    int      `json:"stage"`
	From     int      `json:"from"`
	Mask     []int8   `json:"mask"`
	Moves    []string `json:"moves"`
	Check    bool     `json:"check"`
}

func moveStrings(moves []variant.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func main() {
	numGames := flag.Int("games", 10, "random games per set pairing")
	maxMoves := flag.Int("maxmoves", 200, "plies per game")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	sets := variant.BuiltinRegistry()
	var testCases []TestCase

	for _, w := range sets.List() {
		for _, b := range sets.List() {
			for g := 0; g < *numGames; g++ {
				s := variant.NewGameState(w, b)
				for ply := 0; ply < *maxMoves && !s.GameOver; ply++ {
					legalMoves := s.AllLegalMoves(s.Turn)
					if len(legalMoves) == 0 {
						break
					}
					fen := s.Encode()
					check := s.IsInCheck(s.Turn)

					// --- Stage 0: 起点 Mask（预备区落子的起点记为 -1，不进 Mask）---
					mask0 := make([]int8, variant.NumSquares)
					var boardMoves []variant.Move
					for _, mv := range legalMoves {
						if mv.FromReserve {
							continue
						}
						mask0[mv.From] = 1
						boardMoves = append(boardMoves, mv)
					}
					testCases = append(testCases, TestCase{
						WhiteSet: w.ID,
						BlackSet: b.ID,
						FEN:      fen,
						Stage:    0,
						From:     -1,
						Mask:     mask0,
						Moves:    moveStrings(legalMoves),
						Check:    check,
					})

					// 随机选一步
					chosen := legalMoves[rng.Intn(len(legalMoves))]

					// --- Stage 1: 选中棋子后的落点 Mask ---
					if !chosen.FromReserve {
						mask1 := make([]int8, variant.NumSquares)
						var fromMoves []variant.Move
						for _, mv := range boardMoves {
							if mv.From == chosen.From {
								mask1[mv.To] = 1
								fromMoves = append(fromMoves, mv)
							}
						}
						testCases = append(testCases, TestCase{
							WhiteSet: w.ID,
							BlackSet: b.ID,
							FEN:      fen,
							Stage:    1,
							From:     int(chosen.From),
							Mask:     mask1,
							Moves:    moveStrings(fromMoves),
							Check:    check,
						})
					}

					if _, err := s.Commit(chosen); err != nil {
						log.Fatalf("commit %s at %s: %v", chosen, fen, err)
					}
				}
			}
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, file, 0644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Generated %d test cases to %s\n", len(testCases), *out)
}
