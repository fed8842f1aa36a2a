package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"labyrinth-server/api"
	"labyrinth-server/config"
	"labyrinth-server/server"
)

// Command-line flags, overriding the environment when set.
var (
	addrFlag      string
	staticDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "labyrinth-server",
	Short: "Authoritative game server for the labyrinth arena",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func runServer() {
	cfg := config.LoadServerConfig()
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}
	if staticDirFlag != "" {
		cfg.StaticDir = staticDirFlag
	}

	// Core game server
	s := server.NewGameServer()

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Serves the static frontend application.
	r.Handle("/*", server.StaticFileServer(cfg.StaticDir, "/index.html"))

	// Mount REST API under /api
	r.Mount("/api", api.NewAPIRouter(s))
	// WebSocket endpoint for gameplay
	r.HandleFunc("/ws", s.HandleConnections)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Printf("Server started on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("ListenAndServe:", err)
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&addrFlag, "addr", "", "Listen address, e.g. :8080.")
	rootCmd.PersistentFlags().StringVar(&staticDirFlag, "static-dir", "", "Directory with the frontend bundle.")

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
