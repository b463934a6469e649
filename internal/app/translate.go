package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"horse.fit/bookstore/internal/catalog"
	"horse.fit/bookstore/internal/cli"
	"horse.fit/bookstore/internal/language"
	"horse.fit/bookstore/internal/logging"
	"horse.fit/bookstore/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")
	lang := fs.String("lang", "", "Target language (BCP 47 tag, for example: fr, zh-cn)")
	provider := fs.String("provider", "", "Translation provider name (for example: libre, google)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "translate requires one book id argument")
		printTranslateUsage()
		return 2
	}

	targetLang := language.NormalizeTag(*lang)
	if targetLang == "" {
		fmt.Fprintln(os.Stderr, "--lang is required and must be a valid language tag")
		return 2
	}

	bookID, err := strconv.ParseInt(strings.TrimSpace(fs.Arg(0)), 10, 64)
	if err != nil || bookID <= 0 {
		fmt.Fprintln(os.Stderr, "translate argument must be a positive book id")
		return 2
	}

	ctx, cancel, cfg, pool, err := connectPool(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	registry := translation.NewRegistryFromEnv()
	if name := strings.TrimSpace(*provider); name != "" {
		if err := registry.SetDefault(name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}
	translator := catalog.NewTranslator(pool, pool, registry, cfg.SourceLanguage(), logger)

	row, created, err := translator.GetOrCreateTranslation(ctx, bookID, targetLang)
	if err != nil {
		if errors.Is(err, catalog.ErrBookNotFound) {
			fmt.Fprintf(os.Stderr, "Book not found: %d\n", bookID)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	fmt.Printf(
		"translate book_id=%d lang=%s provider=%s cached=%t\n",
		row.BookID,
		row.Language,
		row.ProviderName,
		!created,
	)
	fmt.Println(row.TranslatedSynopsis)
	return 0
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  bookstore translate <book_id> --lang <lang> [--provider libre] [--env .env] [--timeout 2m]")
}
