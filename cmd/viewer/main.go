package main

import (
	"context"
	"flag"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"github.com/vkarpenko/valentine/internal/flagx"
	"github.com/vkarpenko/valentine/internal/viewer"
	"github.com/vkarpenko/valentine/internal/viewer/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	var cardID string
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	fs.StringVar(&cardID, "i", "", "card identifier to open")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-i"}))

	if cardID == "" {
		log.Println("usage: viewer -i <card-id> [-s server] [-d db] [-t timeout]")
		return
	}

	app, err := viewer.NewApp(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx, cardID); err != nil {
		os.Exit(1)
	}
}
