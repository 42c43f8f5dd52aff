package main

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/mssparcs/chessembly-bot/engine"
	"github.com/mssparcs/chessembly-bot/httpapi"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "zap:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := engine.LoadMaterialOverrides(); err != nil {
		log.Warn("material overrides not applied", zap.Error(err))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := "0.0.0.0:" + port

	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, httpapi.NewRouter(log)); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
