// Command archive prints the games stored in a parquet archive.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/benbeisheim/chessrules/internal/archive"
	"github.com/benbeisheim/chessrules/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to config.json")
	path := flag.String("path", "", "archive file (defaults to archivePath from config)")
	parallel := flag.Int64("parallel", 0, "parquet reader parallelism (defaults to archiveParallel from config)")
	flag.Parse()

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *path == "" {
		*path = cfg.ArchivePath
	}
	if *parallel <= 0 {
		*parallel = cfg.ArchiveParallel
	}

	records, err := archive.Read(*path, *parallel)
	if err != nil {
		log.Fatalf("read %s: %v", *path, err)
	}
	for _, r := range records {
		fmt.Printf("%s  %s  %d moves, %s to move, %d captured\n",
			r.GameID, time.Unix(r.ArchivedAt, 0).UTC().Format(time.RFC3339), r.MoveCount, r.ToMove, r.CapturedCount)
		if moves := r.Transcript(); len(moves) > 0 {
			fmt.Printf("  %s\n", strings.Join(moves, " "))
		}
	}
}
