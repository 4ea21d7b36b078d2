// Package cli implements the trlm CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcliao/trlm/internal/store"
	"github.com/spf13/cobra"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "trlm",
	Short: "Trie-reservoir language model",
	Long:  "A tiny trie-reservoir language model. Frozen random reservoir, trained linear-softmax readout. SQLite-backed model store, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $TRLM_DB or ~/.trlm/models.db)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("TRLM_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".trlm", "models.db")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
