package notice

import (
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	defer Use("en")

	tests := []struct {
		lang string
		key  string
		args []interface{}
		want string
	}{
		{"en", CrossGroupSwap, nil, "Entries can only be swapped within the same group."},
		{"en_GB.utf8", BlockReplaced, []interface{}{"ア"}, "Block ア was replaced."},
		{"en", HallVertices, []interface{}{"East", 3}, "Hall East needs 4 to 6 vertices, got 3."},
		{"ja", BlockReplaced, []interface{}{"ア"}, "ブロック ア を置き換えました。"},
		{"ja-JP", CrossGroupSwap, nil, "入れ替えは同じグループ内でのみ行えます。"},
		{"en", "NOT_A_KEY", nil, "NOT_A_KEY"},
	}

	for _, tt := range tests {
		if err := Use(tt.lang); err != nil {
			t.Fatalf("Use(%q): %v", tt.lang, err)
		}
		if got := Text(tt.key, tt.args...); got != tt.want {
			t.Errorf("[%s] Text(%s) = %q, want %q", tt.lang, tt.key, got, tt.want)
		}
	}
}

func TestUseUnknownLanguage(t *testing.T) {
	if err := Use("fr"); err == nil {
		t.Error("expected an error for a language without a catalog")
	}
	// The previous catalog stays active.
	if strings.HasPrefix(Text(CrossGroupSwap), "CROSS") {
		t.Error("failed Use should keep the current catalog")
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "ja" {
		t.Errorf("Languages() = %v", langs)
	}
}
