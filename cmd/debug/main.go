package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"variantchess/internal/variant"
)

// dragontoothmg 的 perft：只对纯经典对局有意义。
// 它每个升变算四步，本引擎升变目标固定只算一步，出现升变的局面计数会不同
func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, mv := range moves {
		unapply := b.Apply(mv)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func main() {
	white := flag.String("white", variant.SetClassic, "white piece set id")
	black := flag.String("black", variant.SetClassic, "black piece set id")
	fen := flag.String("fen", "", "start position (default: layout of the two sets)")
	depth := flag.Int("depth", 3, "perft depth")
	divide := flag.Bool("divide", false, "print per-move node counts")
	verify := flag.Bool("verify", false, "compare perft against dragontoothmg (classic vs classic only)")
	flag.Parse()

	sets := variant.BuiltinRegistry()
	ws, err := sets.Get(*white)
	if err != nil {
		log.Fatal(err)
	}
	bs, err := sets.Get(*black)
	if err != nil {
		log.Fatal(err)
	}

	var s *variant.GameState
	if *fen != "" {
		s, err = variant.DecodeState(*fen, ws, bs)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		s = variant.NewGameState(ws, bs)
	}

	fmt.Println("FEN:", s.Encode())
	fmt.Println("Status:", s.StatusText())
	fmt.Println("Legal moves:", len(s.AllLegalMoves(s.Turn)))

	if *divide {
		counts := s.Divide(*depth)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var total uint64
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, counts[k])
			total += counts[k]
		}
		fmt.Printf("Total: %d\n", total)
	}

	start := time.Now()
	nodes := s.Perft(*depth)
	fmt.Printf("Perft(%d) = %d  (%v)\n", *depth, nodes, time.Since(start))

	if *verify {
		if *white != variant.SetClassic || *black != variant.SetClassic {
			log.Fatalf("-verify needs classic vs classic, got %s vs %s", *white, *black)
		}
		b := dragontoothmg.ParseFen(s.Encode())
		want := referencePerft(&b, *depth)
		fmt.Printf("dragontoothmg Perft(%d) = %d\n", *depth, want)
		if want != nodes {
			fmt.Println("MISMATCH")
			os.Exit(1)
		}
		fmt.Println("OK")
	}
}
