package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"horse.fit/bookstore/internal/cli"
	"horse.fit/bookstore/internal/seed"
)

func runSeed(args []string) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, cancel, _, pool, err := connectPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	stats, err := seed.Apply(ctx, pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		return 1
	}

	fmt.Printf(
		"seed books_inserted=%d books_skipped=%d characters_inserted=%d characters_skipped=%d\n",
		stats.BooksInserted,
		stats.BooksSkipped,
		stats.CharactersInserted,
		stats.CharactersSkipped,
	)
	return 0
}
