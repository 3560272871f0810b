package main

import (
	"context"

	"github.com/dsemenov/authkeeper/internal/client/cli"
	"github.com/dsemenov/authkeeper/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(context.Background())

}
