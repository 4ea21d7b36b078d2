package cli

import (
	"fmt"

	"github.com/rcliao/trlm/internal/config"
	"github.com/rcliao/trlm/internal/trainer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the canonical end-to-end example",
		Long:  "Train on the built-in hello/cat/dog/help dataset and print the probabilities for 'hello'.",
		Run:   runDemo,
	}

	cmd.Flags().Int64("seed", 0, "Reservoir seed")

	RootCmd.AddCommand(cmd)
}

func runDemo(cmd *cobra.Command, args []string) {
	seed, _ := cmd.Flags().GetInt64("seed")

	opts := config.Demo().TrainerOptions()
	opts.Seed = seed

	m, err := trainer.Train(opts)
	if err != nil {
		exitErr("train", err)
	}

	pred := m.Predict("hello")
	fmt.Printf("Input: 'hello' -> Output Probs: ")
	for _, p := range pred.Probs {
		fmt.Printf("%.3f ", p)
	}
	fmt.Printf("\n")
}
