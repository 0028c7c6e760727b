package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenizeLowercasesAndSplits(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("Annual Leave is 21 days, per YEAR.")
	want := []string{"annual", "leave", "is", "21", "days", "per", "year"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("got %v, want %v", tokens, want)
	}
}

func TestTokenizeDropsShortAndNonWordTokens(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("a I -- !! ok 42 %%")
	want := []string{"ok", "42"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("got %v, want %v", tokens, want)
	}
}

func TestTokenizeArabicPunctuation(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("الإجازة السنوية، واحد وعشرون يوماً؛ لماذا؟")
	want := []string{"الإجازة", "السنوية", "واحد", "وعشرون", "يوماً", "لماذا"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("got %v, want %v", tokens, want)
	}
}

func TestTokenizeKeepsDuplicates(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("leave leave leave")
	if len(tokens) != 3 {
		t.Errorf("expected 3 tokens, got %d", len(tokens))
	}
}

func TestTermsDeduplicatesAndOrdersByLength(t *testing.T) {
	tok := NewTokenizer()

	terms := tok.Terms("pay payment pay insurance")
	want := []string{"insurance", "payment", "pay"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("got %v, want %v", terms, want)
	}
}

func TestTermsStableForEqualLengths(t *testing.T) {
	tok := NewTokenizer()

	terms := tok.Terms("cat dog cat")
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("got %v, want %v", terms, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tok := NewTokenizer()

	if got := tok.Tokenize(""); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
	if got := tok.Tokenize("  \t\n "); len(got) != 0 {
		t.Errorf("expected no tokens for whitespace, got %v", got)
	}
}
