package main

import (
	"context"
	"log"

	"github.com/takatracker/takatracker/internal/app"
	"github.com/takatracker/takatracker/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	application, err := app.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	application.Run(ctx)

}
