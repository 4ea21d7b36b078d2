package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/trlm/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved models",
		Run:   runList,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("names-only", false, "Only output model names")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	namesOnly, _ := cmd.Flags().GetBool("names-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	models, err := s.List(cmd.Context(), store.ListParams{Limit: limit})
	if err != nil {
		exitErr("list", err)
	}

	if namesOnly {
		for _, m := range models {
			fmt.Println(m.Name)
		}
		return
	}

	b, _ := json.MarshalIndent(models, "", "  ")
	fmt.Println(string(b))
}
