package language

import (
	"testing"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"zh", "zh"},
		{"JA", "ja"},
		// 3-letter codes convert
		{"zho", "zh"},
		{"chi", "zh"},
		{"jpn", "ja"},
		{"eng", "en"},
		// Word forms from verbose transcription APIs
		{"chinese", "zh"},
		{"Japanese", "ja"},
		{"ENGLISH", "en"},
		{"cantonese", "yue"},
		// BCP 47 tags
		{"zh-CN", "zh"},
		{"ja-JP", "ja"},
		{"en_US", "en"},
		// Unknown 2-letter passes through
		{"xy", "xy"},
		// Not a code
		{"q1", ""},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ToISO2(tt.input)
			if result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"zh", "Chinese"},
		{"jpn", "Japanese"},
		{"zh-TW", "Chinese"},
		{"", "Unknown"},
		{"xy", "XY"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"ZH", "chinese", " ja ", "", "q1", "english"})
	want := []string{"zh", "ja", "en"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeList = %v, want %v", got, want)
		}
	}
	if NormalizeList(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestParseTokenSetPresets(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"CJE", "zh,ja,en"},
		{"cj", "zh,ja"},
		{"C", "zh"},
		{"zh, ko", "zh,ko"},
		{"zh,chinese,ja", "zh,ja"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			set, err := ParseTokenSet(tt.spec)
			if err != nil {
				t.Fatalf("ParseTokenSet(%q) error: %v", tt.spec, err)
			}
			if set.String() != tt.want {
				t.Fatalf("ParseTokenSet(%q) = %q, want %q", tt.spec, set.String(), tt.want)
			}
		})
	}
}

func TestParseTokenSetRejectsInvalid(t *testing.T) {
	for _, spec := range []string{"", "   ", "zh,q1", ","} {
		if _, err := ParseTokenSet(spec); err == nil {
			t.Errorf("ParseTokenSet(%q) expected error", spec)
		}
	}
}

func TestTokenLookup(t *testing.T) {
	set, err := ParseTokenSet("CJ")
	if err != nil {
		t.Fatalf("ParseTokenSet: %v", err)
	}
	if token, ok := set.Token("zh"); !ok || token != "[ZH]" {
		t.Fatalf("Token(zh) = %q, %v", token, ok)
	}
	if token, ok := set.Token("japanese"); !ok || token != "[JA]" {
		t.Fatalf("Token(japanese) = %q, %v", token, ok)
	}
	if _, ok := set.Token("en"); ok {
		t.Fatal("expected en to be unsupported in CJ set")
	}
	langs := set.Languages()
	langs[0] = "mutated"
	if set.Languages()[0] != "zh" {
		t.Fatal("Languages must return a copy")
	}
}
