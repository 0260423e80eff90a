package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"variantchess/internal/storage"
	"variantchess/internal/variant"
)

type pairing struct {
	White, Black string
}

type result struct {
	Pair    pairing
	Outcome variant.Outcome
	Winner  variant.Color
	Plies   int
}

// playRandom 双方都随机走，直到终局或达到 maxPlies
func playRandom(s *variant.GameState, rng *rand.Rand, maxPlies int) result {
	for s.Ply < maxPlies && !s.GameOver {
		moves := s.AllLegalMoves(s.Turn)
		if len(moves) == 0 {
			s.UpdateStatus()
			break
		}
		if _, err := s.Commit(moves[rng.Intn(len(moves))]); err != nil {
			log.Fatalf("commit generated move: %v (fen %s)", err, s.Encode())
		}
	}
	return result{Outcome: s.Outcome, Winner: s.Winner, Plies: s.Ply}
}

func main() {
	games := flag.Int("games", 100, "games per set pairing")
	maxPlies := flag.Int("maxplies", 300, "adjourn a game after this many plies")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel games")
	record := flag.String("record", "", "badger dir to record finished games into stats")
	flag.Parse()

	sets := variant.BuiltinRegistry()
	ids := sets.IDs()
	var pairs []pairing
	for _, w := range ids {
		for _, b := range ids {
			pairs = append(pairs, pairing{White: w, Black: b})
		}
	}

	var store *storage.Store
	if *record != "" {
		st, err := storage.Open(*record)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()
		store = st
	}

	var (
		mu      sync.Mutex
		results []result
	)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	start := time.Now()
	for pi, p := range pairs {
		for i := 0; i < *games; i++ {
			p, n := p, int64(pi*(*games) + i)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				ws, err := sets.Get(p.White)
				if err != nil {
					return err
				}
				bs, err := sets.Get(p.Black)
				if err != nil {
					return err
				}
				rng := rand.New(rand.NewSource(*seed + n))
				res := playRandom(variant.NewGameState(ws, bs), rng, *maxPlies)
				res.Pair = p

				mu.Lock()
				defer mu.Unlock()
				results = append(results, res)
				if store != nil && res.Outcome != variant.Ongoing {
					return store.RecordResult(&storage.GameRecord{
						WhiteSet: p.White,
						BlackSet: p.Black,
						GameOver: true,
						Outcome:  res.Outcome.String(),
						Winner:   res.Winner.String(),
						Ply:      res.Plies,
					})
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("selfplay: %v", err)
	}
	elapsed := time.Since(start)

	type tally struct {
		white, black, stalemate, adjourned, plies int
	}
	byPair := make(map[pairing]*tally)
	for _, r := range results {
		t := byPair[r.Pair]
		if t == nil {
			t = &tally{}
			byPair[r.Pair] = t
		}
		t.plies += r.Plies
		switch {
		case r.Outcome == variant.Ongoing:
			t.adjourned++
		case r.Outcome == variant.Stalemate:
			t.stalemate++
		case r.Winner == variant.White:
			t.white++
		case r.Winner == variant.Black:
			t.black++
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].White != pairs[j].White {
			return pairs[i].White < pairs[j].White
		}
		return pairs[i].Black < pairs[j].Black
	})

	fmt.Printf("%-12s %-12s %6s %6s %6s %6s %8s\n", "white", "black", "1-0", "0-1", "1/2", "adj", "avg ply")
	for _, p := range pairs {
		t := byPair[p]
		if t == nil {
			continue
		}
		n := t.white + t.black + t.stalemate + t.adjourned
		fmt.Printf("%-12s %-12s %6d %6d %6d %6d %8.1f\n",
			p.White, p.Black, t.white, t.black, t.stalemate, t.adjourned, float64(t.plies)/float64(n))
	}
	fmt.Printf("\n%d games in %v\n", len(results), elapsed)
	os.Exit(0)
}
