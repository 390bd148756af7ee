// quizimport loads static YY-MM-DD.json quiz files into the document store,
// and can re-apply category normalization to documents already stored.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prepwise/dailyquiz/internal/config"
	"github.com/prepwise/dailyquiz/internal/db"
	"github.com/prepwise/dailyquiz/internal/eventlog"
	"github.com/prepwise/dailyquiz/internal/quiz"
	"github.com/prepwise/dailyquiz/internal/quizfile"
)

func main() {
	cfg := config.FromEnv()

	dataDir := flag.String("data", cfg.DataDir, "directory of YY-MM-DD.json quiz files")
	recategorize := flag.Bool("recategorize", false, "re-normalize categories on stored documents instead of importing files")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	var events *eventlog.Repo
	if cfg.EnableEventLog {
		events = eventlog.NewRepo(dbh)
	}
	store := quiz.NewSQLStore(dbh, cfg.DBDriver, events)

	if *recategorize {
		if err := recategorizeAll(ctx, store); err != nil {
			log.Fatalf("recategorize failed: %v", err)
		}
		return
	}

	if err := importDir(ctx, store, *dataDir); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}

func importDir(ctx context.Context, store quiz.Store, dir string) error {
	files, err := quizfile.Scan(dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	imported := 0
	for _, f := range files {
		buf, err := os.ReadFile(f.Path)
		if err != nil {
			log.Printf("skip %s: %v", f.Path, err)
			continue
		}
		var doc quiz.Document
		if err := json.Unmarshal(buf, &doc); err != nil {
			log.Printf("skip %s: bad json: %v", f.Path, err)
			continue
		}
		if _, err := store.Upsert(ctx, f.Date, doc, f.Path); err != nil {
			log.Printf("skip %s: %v", f.Path, err)
			continue
		}
		imported++
	}
	log.Printf("imported %d of %d quiz files from %s", imported, len(files), dir)
	return nil
}

// recategorizeAll re-upserts every stored document; the write path reapplies
// category defaulting and normalization, which is the whole point.
func recategorizeAll(ctx context.Context, store quiz.Store) error {
	entries, err := store.ListDates(ctx, "")
	if err != nil {
		return err
	}
	updated := 0
	for _, e := range entries {
		doc, err := store.GetByDate(ctx, e.Date)
		if err != nil {
			log.Printf("skip %s: %v", e.Date, err)
			continue
		}
		if _, err := store.Upsert(ctx, e.Date, doc, doc.SourceFile); err != nil {
			log.Printf("skip %s: %v", e.Date, err)
			continue
		}
		updated++
	}
	log.Printf("recategorized %d of %d documents", updated, len(entries))
	return nil
}
