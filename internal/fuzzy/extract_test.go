package fuzzy

import "testing"

func TestExtractOne(t *testing.T) {
	choices := []string{"今天天气很好", "我们走吧", "你好世界"}

	match, ok := ExtractOne("我们走吧", choices, 72.5, WRatio)
	if !ok || match.Index != 1 || match.Text != "我们走吧" || match.Score != 100 {
		t.Fatalf("unexpected match: %#v ok=%v", match, ok)
	}
}

func TestExtractOneBelowCutoffStillReportsBest(t *testing.T) {
	match, ok := ExtractOne("完全不同", []string{"abc", "完全一样的句子"}, 72.5, WRatio)
	if ok {
		t.Fatalf("expected no accepted match, got %#v", match)
	}
	if match.Index != 1 || match.Score <= 0 {
		t.Fatalf("expected best candidate to be reported, got %#v", match)
	}
}

func TestExtractOneTiesPreferFirst(t *testing.T) {
	match, ok := ExtractOne("abc", []string{"abc", "abc"}, 0, Ratio)
	if !ok || match.Index != 0 {
		t.Fatalf("expected first index on tie, got %#v", match)
	}
}

func TestExtractOneEmptyChoices(t *testing.T) {
	match, ok := ExtractOne("abc", nil, 0, nil)
	if ok || match.Index != -1 {
		t.Fatalf("expected no match, got %#v ok=%v", match, ok)
	}
}
