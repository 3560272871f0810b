package main

import (
	"context"
	"log"

	"github.com/dsemenov/authkeeper/internal/server"
	"github.com/dsemenov/authkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
