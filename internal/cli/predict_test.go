package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/trlm/internal/model"
)

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	f()
	w.Close()
	b, _ := io.ReadAll(r)
	return string(b)
}

func TestPredictFromDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	dataset := `
name: demo
labels: [hello, cat, dog, help]
corpus: [hello, help, helium, cat, dog]
samples:
  - {input: hello, label: hello}
  - {input: cat, label: cat}
  - {input: dog, label: dog}
  - {input: help, label: help}
training:
  seed: 1
`
	if err := os.WriteFile(path, []byte(dataset), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	RootCmd.SetArgs([]string{"predict", "hello", "-f", path})
	out := captureStdout(t, func() {
		if err := RootCmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})

	var pred model.Prediction
	if err := json.Unmarshal([]byte(out), &pred); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if pred.Best != "hello" || pred.Index != 0 {
		t.Errorf("expected 'hello' (class 0), got %q (class %d)", pred.Best, pred.Index)
	}
	if pred.Steps != 5 {
		t.Errorf("expected 5 traversal steps, got %d", pred.Steps)
	}
}
