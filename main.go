package main

import (
	"fmt"
	"os"

	_ "github.com/KimMachineGun/automemlimit" // Set GOMEMLIMIT from cgroups.
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type cli struct {
	Serve    serveCmd    `cmd:"" help:"Run the API server and the release poller."`
	Backfill backfillCmd `cmd:"" help:"Mirror chapters for every known manga."`
}

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	kctx := kong.Parse(&cli{},
		kong.Name("mangamirror"),
		kong.Description("A Senkuro catalog mirror with release notifications."),
		kong.UsageOnError(),
	)
	if err := kctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
