package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"blogclient/app/cli"
	"blogclient/app/config"
	"blogclient/app/server"

	"github.com/dgraph-io/badger/v4"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		cli.PrintHelp()
		os.Exit(1)
	}

	cfg := config.Load()
	args := os.Args[1:]

	// An optional --server flag overrides the configured API origin for
	// client commands.
	baseURL := cfg.APIURL
	for i := 0; i < len(args); i++ {
		if args[i] == "--server" && i+1 < len(args) {
			baseURL = strings.TrimRight(args[i+1], "/")
			args = append(args[:i], args[i+2:]...)
			break
		}
	}

	if len(args) < 1 {
		cli.PrintHelp()
		os.Exit(1)
	}

	switch strings.ToLower(args[0]) {
	case "version":
		fmt.Printf("blogclient version %s\n", cliVersion)
	case "serve":
		serve(cfg)
	default:
		cli.HandleCommand(baseURL, args)
	}
}

// serve runs the local development server implementing the blog API.
func serve(cfg config.Config) {
	opts := badger.DefaultOptions(cfg.DataDir)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	router := server.New(db).Router()

	log.Printf("Starting blog dev server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
