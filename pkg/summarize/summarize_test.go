package summarize

import (
	"strings"
	"testing"
)

func TestSummary_ShortTextPassthrough(t *testing.T) {
	t.Parallel()

	text := "One sentence. Two sentences. Three sentences."
	if got := Summary(text, 3); got != text {
		t.Errorf("expected short text unchanged, got %q", got)
	}
}

func TestSummary_EmptyText(t *testing.T) {
	t.Parallel()

	if got := Summary("", 3); got != "" {
		t.Errorf("expected empty summary, got %q", got)
	}
}

func TestSummary_KeyPhraseBoost(t *testing.T) {
	t.Parallel()

	// Ten short filler sentences plus one carrying key phrases far from the
	// position-boosted head and tail.
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString("Filler words sit here. ")
	}
	b.WriteString("The most important and key point of the whole note lives right here. ")
	for i := 0; i < 5; i++ {
		b.WriteString("More filler words here. ")
	}

	got := Summary(b.String(), 3)
	if !strings.Contains(got, "most important and key point") {
		t.Errorf("expected key-phrase sentence selected, got %q", got)
	}
}

func TestSummary_PreservesOriginalOrder(t *testing.T) {
	t.Parallel()

	text := "Alpha opens the note with the main idea clearly stated for everyone. " +
		"Beta is plain filler nobody cares much about at all really truly. " +
		"Gamma is plain filler nobody cares much about at all really truly. " +
		"Delta is plain filler nobody cares much about at all really truly. " +
		"Epsilon is plain filler nobody cares much about at all truly. " +
		"In conclusion the omega sentence wraps the important argument up nicely."

	got := Summary(text, 2)
	alpha := strings.Index(got, "Alpha")
	omega := strings.Index(got, "omega")
	if alpha == -1 || omega == -1 {
		t.Fatalf("expected first and last sentences selected, got %q", got)
	}
	if alpha > omega {
		t.Errorf("expected sentences in original order, got %q", got)
	}
}

func TestSentenceCount(t *testing.T) {
	t.Parallel()

	twenty := strings.Repeat("A sentence ends here. ", 20)

	tests := []struct {
		pref string
		text string
		want int
	}{
		{LengthShort, twenty, 2},  // min(2, ceil(20*0.1))
		{LengthMedium, twenty, 4}, // ceil(20*0.2)
		{LengthLong, twenty, 6},   // ceil(20*0.3)
		{LengthShort, "One. Two.", 1},
		{LengthMedium, "One. Two.", 3}, // floor of 3
		{LengthLong, "One. Two.", 5},   // floor of 5
		{"unknown", twenty, 4},         // defaults to medium
	}

	for _, tt := range tests {
		if got := SentenceCount(tt.pref, tt.text); got != tt.want {
			t.Errorf("SentenceCount(%q): got %d want %d", tt.pref, got, tt.want)
		}
	}
}
