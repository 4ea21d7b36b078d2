package reservoir

import (
	"math"
	"math/rand"
	"testing"
)

func newTestBank(t *testing.T, depths, size int, rho float64, seed int64) *Bank {
	t.Helper()
	b, err := NewBank(depths, size, rho, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("create bank: %v", err)
	}
	return b
}

func TestNewBankRejectsBadSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewBank(0, 64, 0.9, rng); err == nil {
		t.Error("expected error for zero depth count")
	}
	if _, err := NewBank(16, 0, 0.9, rng); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestNewBankDimensions(t *testing.T) {
	b := newTestBank(t, 16, 64, 0.9, 1)

	if b.Depths() != 16 {
		t.Errorf("expected 16 depths, got %d", b.Depths())
	}
	if b.Size() != 64 {
		t.Errorf("expected size 64, got %d", b.Size())
	}
	for l := 0; l < b.Depths(); l++ {
		r, c := b.Matrix(l).Dims()
		if r != 64 || c != 64 {
			t.Errorf("depth %d: expected 64x64, got %dx%d", l, r, c)
		}
	}
}

func TestRescaleSetsMeanAbsToRho(t *testing.T) {
	const rho = 0.9
	b := newTestBank(t, 4, 32, rho, 7)

	for l := 0; l < b.Depths(); l++ {
		w := b.Matrix(l)
		var sum float64
		for i := 0; i < 32; i++ {
			for j := 0; j < 32; j++ {
				sum += math.Abs(w.At(i, j))
			}
		}
		mean := sum / (32 * 32)
		if math.Abs(mean-rho) > 1e-9 {
			t.Errorf("depth %d: expected mean abs %g, got %g", l, rho, mean)
		}
	}
}

func TestBankReproducibleFromSeed(t *testing.T) {
	a := newTestBank(t, 8, 16, 0.9, 42)
	b := newTestBank(t, 8, 16, 0.9, 42)

	for l := 0; l < a.Depths(); l++ {
		wa, wb := a.Matrix(l), b.Matrix(l)
		for i := 0; i < 16; i++ {
			for j := 0; j < 16; j++ {
				if wa.At(i, j) != wb.At(i, j) {
					t.Fatalf("depth %d entry (%d,%d) differs: %g vs %g",
						l, i, j, wa.At(i, j), wb.At(i, j))
				}
			}
		}
	}
}

func TestBanksFromDifferentSeedsDiffer(t *testing.T) {
	a := newTestBank(t, 1, 8, 0.9, 1)
	b := newTestBank(t, 1, 8, 0.9, 2)

	same := true
	for i := 0; i < 8 && same; i++ {
		for j := 0; j < 8; j++ {
			if a.Matrix(0).At(i, j) != b.Matrix(0).At(i, j) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("banks from different seeds should not be identical")
	}
}
