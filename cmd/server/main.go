package main

import (
	"flag"
	"log"

	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/server"
	"github.com/benbeisheim/chessrules/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to config.json (searched upwards from the working directory when empty)")
	flag.Parse()

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gameManager := service.NewGameManager(cfg)
	defer gameManager.Close()

	app := server.New(cfg, service.NewGameService(gameManager))
	log.Fatal(app.Listen(cfg.Listen))
}
