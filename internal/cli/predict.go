package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/trlm/internal/config"
	"github.com/rcliao/trlm/internal/store"
	"github.com/rcliao/trlm/internal/trainer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "predict [input]",
		Short: "Predict the label of an input string",
		Long:  "Run a forward pass through a model's reservoir and readout and print the label probabilities. The model comes from the store (-m) or is trained in memory from a dataset file (-f).",
		Args:  cobra.ExactArgs(1),
		Run:   runPredict,
	}

	cmd.Flags().StringP("model", "m", "", "Saved model name")
	cmd.Flags().StringP("file", "f", "", "Dataset YAML file (train in memory, nothing is persisted)")
	cmd.Flags().Int("version", 0, "Model version (default: latest)")

	RootCmd.AddCommand(cmd)
}

func runPredict(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("model")
	file, _ := cmd.Flags().GetString("file")
	version, _ := cmd.Flags().GetInt("version")

	var m *trainer.Model
	switch {
	case file != "":
		dataset, err := config.Load(file)
		if err != nil {
			exitErr("load dataset", err)
		}
		m, err = trainer.Train(dataset.TrainerOptions())
		if err != nil {
			exitErr("train", err)
		}
	case name != "":
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		rec, err := s.Get(cmd.Context(), store.GetParams{Name: name, Version: version})
		if err != nil {
			exitErr("get model", err)
		}
		m, err = trainer.Restore(rec)
		if err != nil {
			exitErr("restore model", err)
		}
	default:
		exitErr("predict", fmt.Errorf("a model is required (-m name or -f dataset)"))
	}

	pred := m.Predict(args[0])
	b, _ := json.MarshalIndent(pred, "", "  ")
	fmt.Println(string(b))
}
