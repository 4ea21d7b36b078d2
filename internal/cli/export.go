package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/trlm/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export a saved model as JSON",
		Long:  "Export a saved model as JSON, including its corpus words and readout weights.",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	cmd.Flags().Int("version", 0, "Model version (default: latest)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	version, _ := cmd.Flags().GetInt("version")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.Get(cmd.Context(), store.GetParams{Name: args[0], Version: version})
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Println(string(b))
}
