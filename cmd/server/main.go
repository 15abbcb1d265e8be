package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/growthlab/diagnostic/internal/api"
	"github.com/growthlab/diagnostic/internal/db"
	"github.com/growthlab/diagnostic/internal/middleware"
	"github.com/growthlab/diagnostic/internal/utils"
)

func main() {
	addr := utils.SafeEnv("DIAG_ADDR", ":8080")

	store, err := openStore(os.Getenv("DIAG_SQLITE_PATH"))
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"name": "Growth Diagnostic API",
		})
	})

	startRetentionSweep(store)

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(middleware.WithAuth(mux))))

	log.Printf("diagnostic server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks SQLite when a path is configured, otherwise the in-memory
// store (development mode; results do not survive a restart).
func openStore(sqlitePath string) (api.Store, error) {
	if sqlitePath == "" {
		log.Printf("DIAG_SQLITE_PATH not set, using in-memory store")
		return api.NewMemoryStore(), nil
	}
	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(sqlitePath))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db.NewSQLiteStore(sqliteDB)
}

// startRetentionSweep deletes results older than DIAG_RETENTION_DAYS once a
// day. Unset or zero keeps results forever.
func startRetentionSweep(store api.Store) {
	days, _ := strconv.Atoi(os.Getenv("DIAG_RETENTION_DAYS"))
	if days <= 0 {
		return
	}
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		cutoff := time.Now().UTC().AddDate(0, 0, -days)
		removed, err := store.DeleteResultsBefore(cutoff)
		if err != nil {
			log.Printf("retention sweep: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("retention sweep removed %d results older than %s", removed, cutoff.Format("2006-01-02"))
		}
	})
	if err != nil {
		log.Fatalf("schedule retention sweep: %v", err)
	}
	c.Start()
}
