package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"variantchess/internal/server/game"
	httpserver "variantchess/internal/server/http"
	"variantchess/internal/storage"
	"variantchess/internal/variant"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func openStore(dir string, memory bool) (*storage.Store, error) {
	if memory {
		return storage.OpenInMemory()
	}
	if dir == "" {
		d, err := storage.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	log.Printf("data dir: %s", dir)
	return storage.Open(dir)
}

func main() {
	addr := flag.String("addr", getenv("VCHESS_ADDR", ":2888"), "listen address")
	webDir := flag.String("web", getenv("VCHESS_WEB", "./web"), "directory with index.html / js / svg")
	dataDir := flag.String("data", getenv("VCHESS_DATA", ""), "badger data directory (default: per-user data dir)")
	memory := flag.Bool("memory", false, "keep games in memory only")
	setsDir := flag.String("sets", getenv("VCHESS_SETS", ""), "directory with extra piece set *.json files")
	noBrowser := flag.Bool("no-browser", false, "do not open the default browser")
	flag.Parse()

	sets := variant.BuiltinRegistry()
	if *setsDir != "" {
		n, err := sets.LoadDir(*setsDir)
		if err != nil {
			log.Fatalf("load piece sets from %s: %v", *setsDir, err)
		}
		log.Printf("loaded %d piece sets from %s", n, *setsDir)
	}

	store, err := openStore(*dataDir, *memory)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	games := game.NewManager(sets, game.WithStore(store))
	stop := make(chan struct{})
	defer close(stop)
	go games.RunTicker(time.Second, stop)

	mux := httpserver.NewMux(httpserver.NewHandler(games, store), *webDir)

	log.Printf("listening on %s, serving static from %s, sets=%v", *addr, *webDir, sets.IDs())

	// 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
	if !*noBrowser {
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
