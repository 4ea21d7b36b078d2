package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/trlm/internal/config"
	"github.com/rcliao/trlm/internal/trainer"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model from a dataset file",
		Long:  "Train a readout on a YAML dataset. The reservoir itself stays frozen. Use --save to persist the result.",
		Run:   runTrain,
	}

	cmd.Flags().StringP("file", "f", "", "Dataset YAML file (required unless --demo)")
	cmd.Flags().Bool("demo", false, "Use the built-in demo dataset")
	cmd.Flags().String("save", "", "Persist the trained model under this name")
	cmd.Flags().Int64("seed", 0, "Override the dataset seed")

	RootCmd.AddCommand(cmd)
}

// trainReport is the JSON printed after a run.
type trainReport struct {
	Name        string            `json:"name,omitempty"`
	Labels      []string          `json:"labels"`
	Samples     int               `json:"samples"`
	Epochs      int               `json:"epochs"`
	Accuracy    float64           `json:"accuracy"`
	Predictions []json.RawMessage `json:"predictions"`
	Saved       *savedModel       `json:"saved,omitempty"`
}

type savedModel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

func runTrain(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")
	demo, _ := cmd.Flags().GetBool("demo")
	saveName, _ := cmd.Flags().GetString("save")

	var dataset *config.Dataset
	var err error
	switch {
	case demo:
		dataset = config.Demo()
	case file != "":
		dataset, err = config.Load(file)
		if err != nil {
			exitErr("load dataset", err)
		}
	default:
		exitErr("train", fmt.Errorf("a dataset is required (-f file or --demo)"))
	}

	opts := dataset.TrainerOptions()
	if cmd.Flags().Changed("seed") {
		opts.Seed, _ = cmd.Flags().GetInt64("seed")
	}

	m, err := trainer.Train(opts)
	if err != nil {
		exitErr("train", err)
	}

	preds, acc, err := m.Evaluate(dataset.Samples)
	if err != nil {
		exitErr("evaluate", err)
	}

	report := trainReport{
		Name:     dataset.Name,
		Labels:   m.Labels,
		Samples:  len(dataset.Samples),
		Epochs:   opts.Epochs,
		Accuracy: acc,
	}
	for _, p := range preds {
		b, _ := json.Marshal(p)
		report.Predictions = append(report.Predictions, b)
	}

	if saveName != "" {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		rec, err := s.Save(cmd.Context(), saveName, m.Record())
		if err != nil {
			exitErr("save", err)
		}
		report.Saved = &savedModel{ID: rec.ID, Name: rec.Name, Version: rec.Version}
	}

	b, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(b))
}
