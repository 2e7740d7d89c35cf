package suggest

import "testing"

func TestMerge_DedupKeepsHigherScore(t *testing.T) {
	merged := Merge([]Suggestion{
		{Text: "Python", Score: 0.5, Type: TypeContent},
		{Text: "python", Score: 0.9, Type: TypeQuery},
	}, 10)

	if len(merged) != 1 {
		t.Fatalf("expected 1 suggestion after dedup, got %d", len(merged))
	}
	if merged[0].Score != 0.9 || merged[0].Type != TypeQuery {
		t.Errorf("expected the higher-scored entry to win, got %+v", merged[0])
	}
}

func TestMerge_SortsByScoreDescending(t *testing.T) {
	merged := Merge([]Suggestion{
		{Text: "a", Score: 0.3},
		{Text: "b", Score: 0.9},
		{Text: "c", Score: 0.6},
	}, 10)

	for i := 1; i < len(merged); i++ {
		if merged[i-1].Score < merged[i].Score {
			t.Fatalf("expected descending order, got %+v", merged)
		}
	}
}

func TestMerge_Truncates(t *testing.T) {
	merged := Merge([]Suggestion{
		{Text: "a", Score: 0.1},
		{Text: "b", Score: 0.2},
		{Text: "c", Score: 0.3},
	}, 2)
	if len(merged) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(merged))
	}
}

func TestMerge_NeverReturnsDuplicateText(t *testing.T) {
	merged := Merge([]Suggestion{
		{Text: "Go", Score: 0.5},
		{Text: "GO", Score: 0.4},
		{Text: "go", Score: 0.6},
	}, 10)
	if len(merged) != 1 {
		t.Errorf("expected case-insensitive dedup, got %d entries", len(merged))
	}
}
