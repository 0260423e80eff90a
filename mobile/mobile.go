package mobile

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"variantchess/internal/server/game"
	httpserver "variantchess/internal/server/http"
	"variantchess/internal/storage"
	"variantchess/internal/variant"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// dataDir: writable directory for the game store; empty keeps games in memory
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, dataDir string, port string) {
	var (
		store *storage.Store
		err   error
	)
	if dataDir != "" {
		store, err = storage.Open(dataDir)
	} else {
		store, err = storage.OpenInMemory()
	}
	if err != nil {
		log.Printf("Failed to open store: %v", err)
		return
	}

	games := game.NewManager(variant.BuiltinRegistry(), game.WithStore(store))
	go games.RunTicker(time.Second, nil)

	mux := httpserver.NewMux(httpserver.NewHandler(games, store), webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		defer store.Close()
		if err := http.ListenAndServe("127.0.0.1:"+port, mux); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}

// StartServerPort is StartServer for bindings that pass the port as a number.
func StartServerPort(webDir string, dataDir string, port int) {
	StartServer(webDir, dataDir, strconv.Itoa(port))
}
