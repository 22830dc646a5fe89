// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/occasio/listindex"
	"github.com/occasio/listindex/core"
	"github.com/occasio/listindex/expand"
	"github.com/occasio/listindex/index"
	"github.com/occasio/listindex/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "listindex",
		Usage: "Marketplace listing search engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "dictionary",
				Usage: "Path to a synonym dictionary YAML file (default: embedded)",
			},
			&cli.StringFlag{
				Name:  "keywords",
				Usage: "Path to a category keyword YAML file (default: embedded)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search listings by free text and structured filters",
				ArgsUsage: "[query...]",
				Action:    searchCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:  "category",
						Usage: "Restrict to a category slug",
					},
					&cli.Float64Flag{
						Name:  "min-price",
						Usage: "Minimum price",
						Value: -1,
					},
					&cli.Float64Flag{
						Name:  "max-price",
						Usage: "Maximum price",
						Value: -1,
					},
					&cli.StringFlag{
						Name:  "brand",
						Usage: "Restrict to a brand",
					},
					&cli.StringFlag{
						Name:  "condition",
						Usage: "Restrict to a condition code",
					},
					&cli.StringFlag{
						Name:  "postal",
						Usage: "Restrict to a seller postal-code prefix",
					},
					&cli.BoolFlag{
						Name:  "auctions",
						Usage: "Restrict to auction listings",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort field (relevance, price, createdAt, auctionEnd, bids)",
					},
					&cli.BoolFlag{
						Name:  "desc",
						Usage: "Sort descending",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Page size",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Page offset",
					},
				),
			},
			{
				Name:      "expand",
				Usage:     "Show the expansion of a query without searching",
				ArgsUsage: "[query...]",
				Action:    expandCommand,
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the search documents of all listings",
				Action: reindexCommand,
				Flags: append(dbFlags(),
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size (default: half the CPUs)",
					},
				),
			},
			{
				Name:   "seed",
				Usage:  "Load a small demo dataset",
				Action: seedCommand,
				Flags:  dbFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
	}
}

// openDatabase opens the database honoring the global data-file overrides.
func openDatabase(c *cli.Context) (*listindex.Database, error) {
	var opts []listindex.DatabaseOption
	if path := c.String("dictionary"); path != "" {
		opts = append(opts, listindex.WithDictionaryFile(path))
	}
	if path := c.String("keywords"); path != "" {
		opts = append(opts, listindex.WithKeywordFile(path))
	}

	db, err := listindex.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func searchCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	filter := &core.ListingFilter{
		Brand:        c.String("brand"),
		Condition:    c.String("condition"),
		PostalPrefix: c.String("postal"),
		OnlyAuctions: c.Bool("auctions"),
	}
	if slug := c.String("category"); slug != "" {
		category, err := db.CategoryRepository().GetCategoryBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("unknown category %q: %w", slug, err)
		}
		filter.CategoryId = &category.Id
	}
	if min := c.Float64("min-price"); min >= 0 {
		filter.MinPrice = &min
	}
	if max := c.Float64("max-price"); max >= 0 {
		filter.MaxPrice = &max
	}

	req := &search.Request{
		Query:  strings.Join(c.Args().Slice(), " "),
		Filter: filter,
		Sort: search.Sort{
			Field:      search.SortField(c.String("sort")),
			Descending: c.Bool("desc"),
		},
		Limit:  c.Int("limit"),
		Offset: c.Int("offset"),
	}

	resp, err := db.Search(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("%d hits (showing %d from offset %d)\n", resp.Total, len(resp.Results), resp.Offset)
	if resp.DidYouMean != "" {
		fmt.Printf("did you mean: %s\n", resp.DidYouMean)
	}
	for i, hit := range resp.Results {
		location := ""
		if hit.Seller != nil {
			location = fmt.Sprintf(" - %s %s", hit.Seller.PostalCode, hit.Seller.City)
		}
		fmt.Printf("%d: '%s' CHF %.2f (%d bids)%s [%0.3f]\n",
			resp.Offset+i+1, hit.Listing.Title, hit.CurrentPrice, hit.BidCount, location, hit.Score)
	}
	return nil
}

func expandCommand(c *cli.Context) error {
	// Expansion needs no storage: build the expander directly.
	dictionaryPath := c.String("dictionary")
	expander, err := newExpander(dictionaryPath)
	if err != nil {
		return err
	}

	expansion := expander.Expand(strings.Join(c.Args().Slice(), " "))
	if expansion.IsEmpty() {
		fmt.Println("no usable tokens")
		return nil
	}

	fmt.Printf("query:  %s\n", expansion.Query)
	fmt.Printf("tokens: %s\n", strings.Join(expansion.Tokens, ", "))
	fmt.Printf("lexical: %s\n", expansion.OrExpr)
	if len(expansion.Suggestions) > 0 {
		fmt.Printf("suggestions: %s\n", strings.Join(expansion.Suggestions, ", "))
	}
	if expansion.DidYouMean != "" {
		fmt.Printf("did you mean: %s\n", expansion.DidYouMean)
	}
	return nil
}

func newExpander(dictionaryPath string) (*expand.Expander, error) {
	var dictionary *expand.Dictionary
	var err error
	if dictionaryPath == "" {
		dictionary, err = expand.DefaultDictionary()
	} else {
		dictionary, err = expand.LoadDictionary(dictionaryPath)
	}
	if err != nil {
		return nil, err
	}
	return expand.NewExpander(dictionary)
}

func reindexCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []index.Option
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, index.WithPoolSize(workers))
	}

	reindexer, err := db.NewReindexer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create reindexer: %w", err)
	}
	defer reindexer.Release()

	rebuilt, err := reindexer.Reindex(context.Background())
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	fmt.Printf("rebuilt %d documents\n", rebuilt)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
