package trainer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rcliao/trlm/internal/model"
)

// demoOptions mirrors the reference driver: five corpus words, four
// labeled classes, 100 epochs at lr 0.01 decayed x0.9 every 20.
// Noise is disabled so results are reproducible.
func demoOptions(seed int64) Options {
	params := model.DefaultParams()
	params.NoiseAmp = 0
	return Options{
		Params: params,
		Labels: []string{"hello", "cat", "dog", "help"},
		Corpus: []string{"hello", "help", "helium", "cat", "dog"},
		Samples: []model.Sample{
			{Input: "hello", Label: "hello"},
			{Input: "cat", Label: "cat"},
			{Input: "dog", Label: "dog"},
			{Input: "help", Label: "help"},
		},
		Epochs:       100,
		LearningRate: 0.01,
		DecayEvery:   20,
		DecayFactor:  0.9,
		Seed:         seed,
	}
}

func TestTrainEndToEnd(t *testing.T) {
	m, err := Train(demoOptions(1))
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	pred := m.Predict("hello")
	if pred.Index != 0 {
		t.Fatalf("expected class 0 for 'hello', got %d (%s)", pred.Index, pred.Best)
	}
	for i := 1; i < len(pred.Probs); i++ {
		if pred.Probs[0] <= pred.Probs[i] {
			t.Errorf("probs[0] = %g not strictly above probs[%d] = %g",
				pred.Probs[0], i, pred.Probs[i])
		}
	}
	if pred.Steps != 5 {
		t.Errorf("expected 5 traversal steps for 'hello', got %d", pred.Steps)
	}
}

func TestTrainReachesFullAccuracyOnDemo(t *testing.T) {
	opts := demoOptions(1)
	m, err := Train(opts)
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	_, acc, err := m.Evaluate(opts.Samples)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if acc != 1 {
		t.Errorf("expected accuracy 1 on the training set, got %g", acc)
	}
}

func TestTrainRejectsUnknownLabel(t *testing.T) {
	opts := demoOptions(1)
	opts.Samples = append(opts.Samples, model.Sample{Input: "bird", Label: "bird"})
	if _, err := Train(opts); err == nil {
		t.Error("expected error for sample with unknown label")
	}
}

func TestTrainRejectsEmptySamples(t *testing.T) {
	opts := demoOptions(1)
	opts.Samples = nil
	if _, err := Train(opts); err == nil {
		t.Error("expected error for empty sample set")
	}
}

func TestEvaluateRejectsEmptySamples(t *testing.T) {
	m, err := Train(demoOptions(1))
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if _, _, err := m.Evaluate(nil); err == nil {
		t.Error("expected error evaluating zero samples")
	}
}

func TestBuildRejectsLabelCountMismatch(t *testing.T) {
	params := model.DefaultParams() // OutDim 4
	_, err := Build(params, []string{"a", "b"}, []string{"a", "b"}, 1)
	if err == nil {
		t.Error("expected error for out_dim/label mismatch")
	}
}

func TestRecordRestoreRoundTrip(t *testing.T) {
	m, err := Train(demoOptions(7))
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	restored, err := Restore(m.Record())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	// Noise is off, so both models are deterministic and must agree
	// exactly on every input.
	for _, in := range []string{"hello", "help", "helium", "cat", "dog", "helix", "zzz"} {
		want := m.Predict(in)
		got := restored.Predict(in)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q: restored model differs (-want +got):\n%s", in, diff)
		}
	}
}

func TestPredictOnUnseenInput(t *testing.T) {
	m, err := Train(demoOptions(1))
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	// A completely unseen input traverses zero edges and still gets a
	// valid distribution.
	pred := m.Predict("zzz")
	if pred.Steps != 0 {
		t.Errorf("expected 0 steps, got %d", pred.Steps)
	}
	var sum float64
	for _, p := range pred.Probs {
		sum += p
	}
	if sum < 0.99999 || sum > 1.00001 {
		t.Errorf("probs sum to %g", sum)
	}
}
