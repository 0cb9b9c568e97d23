package main

import (
	"log"
	"net/http"

	"skystrike/config"
	"skystrike/network"
	"skystrike/room"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	rooms := room.NewManager()
	srv := network.NewServer(rooms)

	log.Printf("relay listening on %s (ws endpoint: /ws)", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, srv.Handler()))
}
