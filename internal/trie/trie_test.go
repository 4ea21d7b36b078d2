package trie

import "testing"

func newTestTrie(t *testing.T, maxDepth int, words ...string) *Trie {
	t.Helper()
	tr, err := New(maxDepth)
	if err != nil {
		t.Fatalf("create trie: %v", err)
	}
	for _, w := range words {
		tr.Insert(w)
	}
	return tr
}

func TestNewRejectsNonPositiveDepth(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("expected error for depth 0")
	}
	if _, err := New(-3); err == nil {
		t.Error("expected error for negative depth")
	}
}

func TestInsertAndContains(t *testing.T) {
	tr := newTestTrie(t, 16, "hello", "help", "helium", "cat", "dog")

	for _, w := range []string{"hello", "help", "helium", "cat", "dog"} {
		if !tr.Contains(w) {
			t.Errorf("expected trie to contain %q", w)
		}
	}
	if tr.Contains("hel") {
		t.Error("prefix 'hel' should not be terminal")
	}
	if tr.Contains("dogs") {
		t.Error("'dogs' was never inserted")
	}
}

func TestDepthMatchesDistanceFromRoot(t *testing.T) {
	tr := newTestTrie(t, 16, "hello")

	cur := Root
	for i := 0; i < len("hello"); i++ {
		if got := tr.Depth(cur); got != i {
			t.Errorf("depth at edge %d: expected %d, got %d", i, i, got)
		}
		next, ok := tr.Child(cur, "hello"[i])
		if !ok {
			t.Fatalf("missing child at edge %d", i)
		}
		cur = next
	}
	if got := tr.Depth(cur); got != 5 {
		t.Errorf("final depth: expected 5, got %d", got)
	}
	if !tr.Terminal(cur) {
		t.Error("final node should be terminal")
	}
}

func TestInsertTruncatesAtMaxDepth(t *testing.T) {
	tr := newTestTrie(t, 4, "abcdefgh")

	// Only 4 edges may exist: root plus 4 nodes.
	if got := tr.Len(); got != 5 {
		t.Errorf("expected 5 nodes, got %d", got)
	}
	end := tr.Walk("abcdefgh")
	if got := tr.Depth(end); got != 4 {
		t.Errorf("expected walk to stop at depth 4, got %d", got)
	}
	if !tr.Terminal(end) {
		t.Error("truncation point should be terminal")
	}
	if !tr.Contains("abcdefgh") {
		t.Error("truncated insert should still be contained")
	}
}

func TestShortInsertCreatesNoSpuriousNodes(t *testing.T) {
	tr := newTestTrie(t, 16, "ab")

	if got := tr.Len(); got != 3 {
		t.Errorf("expected 3 nodes, got %d", got)
	}
	end := tr.Walk("ab")
	if got := tr.Depth(end); got != 2 {
		t.Errorf("expected terminal at depth 2, got %d", got)
	}
	if !tr.Terminal(end) {
		t.Error("node at true length should be terminal")
	}
}

func TestWalkStopsAtDeepestMatch(t *testing.T) {
	tr := newTestTrie(t, 16, "hello")

	if got := tr.Walk("zzz"); got != Root {
		t.Errorf("unknown walk should stay at root, got node %d", got)
	}
	mid := tr.Walk("helix")
	if got := tr.Depth(mid); got != 3 {
		t.Errorf("expected 'helix' to stop at depth 3, got %d", got)
	}
}

func TestInsertSharedPrefix(t *testing.T) {
	tr := newTestTrie(t, 16, "hello", "help")

	// "hel" is shared: root + h,e,l + lo + p = 7 nodes.
	if got := tr.Len(); got != 7 {
		t.Errorf("expected 7 nodes, got %d", got)
	}
}
