package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"budget-control/internal/config"
	"budget-control/internal/data"
	"budget-control/internal/model"
	"budget-control/internal/store"
)

// seriesWriter is implemented by both the SQLite and Postgres stores.
type seriesWriter interface {
	SaveSeries(ctx context.Context, ts model.TimeSeries) error
}

func main() {
	_ = godotenv.Load()

	var (
		dbPath      = flag.String("db", "", "SQLite database path (default: $DB_PATH)")
		databaseURL = flag.String("database-url", "", "Postgres URL (default: $DATABASE_URL)")
		prefix      = flag.String("prefix", "", "Key prefix prepended to every imported series")
		dryRun      = flag.Bool("dry-run", false, "Parse and validate files without writing")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: import-series [flags] <file-or-dir>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	srv, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}
	if *dbPath == "" {
		*dbPath = srv.DBPath
	}
	if *databaseURL == "" {
		*databaseURL = srv.DatabaseURL
	}

	series, err := collect(flag.Args(), *prefix)
	if err != nil {
		log.Fatalf("Failed to read series: %v", err)
	}
	fmt.Printf("Parsed %d series\n", len(series))
	if *dryRun {
		for _, ts := range series {
			fmt.Printf("  %s (%d points)\n", ts.Key, ts.Len())
		}
		return
	}

	ctx := context.Background()
	var targets []seriesWriter
	if *dbPath != "" {
		st, err := store.NewSQLite(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open SQLite store: %v", err)
		}
		defer st.Close()
		targets = append(targets, st)
	}
	if *databaseURL != "" {
		pg, err := store.NewPostgres(ctx, *databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to create Postgres schema: %v", err)
		}
		targets = append(targets, pg)
	}
	if len(targets) == 0 {
		log.Fatal("no target store: set --db / DB_PATH or --database-url / DATABASE_URL")
	}

	failed := 0
	for _, ts := range series {
		ok := true
		for _, t := range targets {
			if err := t.SaveSeries(ctx, ts); err != nil {
				fmt.Printf("  warning: %s: %v\n", ts.Key, err)
				failed++
				ok = false
			}
		}
		if ok {
			fmt.Printf("  imported %s (%d points)\n", ts.Key, ts.Len())
		}
	}
	if failed > 0 {
		log.Fatalf("%d writes failed", failed)
	}
	fmt.Printf("Imported %d series into %d store(s)\n", len(series), len(targets))
}

// collect loads every .json and .csv file named or found under a directory.
// Keys default to the path relative to the directory, without extension.
func collect(args []string, prefix string) ([]model.TimeSeries, error) {
	var out []model.TimeSeries
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			ts, err := loadFile(arg, keyFor(filepath.Base(arg)))
			if err != nil {
				return nil, err
			}
			out = append(out, withPrefix(ts, prefix))
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !seriesFile(path) {
				return err
			}
			rel, err := filepath.Rel(arg, path)
			if err != nil {
				return err
			}
			ts, err := loadFile(path, keyFor(rel))
			if err != nil {
				return err
			}
			out = append(out, withPrefix(ts, prefix))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func seriesFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".csv":
		return true
	}
	return false
}

func keyFor(rel string) string {
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

func loadFile(path, key string) (model.TimeSeries, error) {
	var (
		ts  model.TimeSeries
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		ts, err = data.LoadSeriesCSV(path, key)
	} else {
		ts, err = data.LoadSeriesJSON(path)
	}
	if err != nil {
		return ts, fmt.Errorf("%s: %w", path, err)
	}
	if ts.Key == "" {
		ts.Key = key
	}
	return ts, nil
}

func withPrefix(ts model.TimeSeries, prefix string) model.TimeSeries {
	if prefix != "" {
		ts.Key = strings.TrimSuffix(prefix, "/") + "/" + ts.Key
	}
	return ts
}
