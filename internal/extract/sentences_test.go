package extract

import (
	"strings"
	"testing"
)

func TestSplitSentences_LengthFilter(t *testing.T) {
	text := "A short one. " + "A sentence long enough to pass the length filter easily."

	sentences := SplitSentences(text)
	if len(sentences) != 1 {
		t.Fatalf("Expected 1 sentence, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "A sentence long enough to pass the length filter easily" {
		t.Errorf("Unexpected sentence: %q", sentences[0])
	}
}

func TestSplitSentences_ShortWithoutPunctuation(t *testing.T) {
	for _, text := range []string{"", "   ", "short text", "nineteen characters"} {
		if got := SplitSentences(text); len(got) != 0 {
			t.Errorf("Expected no sentences for %q, got %v", text, got)
		}
	}
}

func TestSplitSentences_BoundaryIsExclusive(t *testing.T) {
	exactly := strings.Repeat("a", MinSentenceLength)
	if got := SplitSentences(exactly); len(got) != 0 {
		t.Errorf("Expected %d-char piece to be dropped, got %v", MinSentenceLength, got)
	}

	oneMore := strings.Repeat("a", MinSentenceLength+1)
	if got := SplitSentences(oneMore); len(got) != 1 {
		t.Errorf("Expected %d-char piece to be kept, got %v", MinSentenceLength+1, got)
	}
}

func TestSplitSentences_CountsRunesNotBytes(t *testing.T) {
	// 20 two-byte runes: 40 bytes but only 20 characters
	accented := strings.Repeat("é", MinSentenceLength)
	if got := SplitSentences(accented); len(got) != 0 {
		t.Errorf("Expected accented 20-rune piece to be dropped, got %v", got)
	}
}

func TestSplitSentences_PunctuationRuns(t *testing.T) {
	text := "Hello there my dear old friend!!! What a wonderful day it is today??? Ok."

	sentences := SplitSentences(text)
	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "Hello there my dear old friend" {
		t.Errorf("Unexpected first sentence: %q", sentences[0])
	}
	if sentences[1] != "What a wonderful day it is today" {
		t.Errorf("Unexpected second sentence: %q", sentences[1])
	}
}

func TestSplitSentences_NeverWhitespaceOnly(t *testing.T) {
	text := "....   !!!   ???\n\n\t.   " + strings.Repeat(" ", 30) + "."
	for _, s := range SplitSentences(text) {
		if strings.TrimSpace(s) == "" {
			t.Errorf("Got whitespace-only sentence %q", s)
		}
	}
}

func TestSplitSentences_PreservesOrderAndTrims(t *testing.T) {
	text := "   First sentence that is long enough.\n\n   Second sentence that is long enough!  "

	sentences := SplitSentences(text)
	want := []string{"First sentence that is long enough", "Second sentence that is long enough"}
	if len(sentences) != len(want) {
		t.Fatalf("Expected %d sentences, got %v", len(want), sentences)
	}
	for i := range want {
		if sentences[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, sentences[i], want[i])
		}
	}
}
