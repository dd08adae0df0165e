package ai

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/olenko/satchel/internal/domain"
)

func TestNoteCatalog(t *testing.T) {
	notes := []*domain.Note{
		{Text: "buy milk", Tags: []string{"errands", "food"}},
		{Text: "call mom"},
	}

	want := "1: buy milk  [tags: errands, food]\n2: call mom  [tags: —]"
	if got := NoteCatalog(notes); got != want {
		t.Fatalf("catalog mismatch:\nwant %q\ngot  %q", want, got)
	}

	if got := NoteCatalog(nil); got != "" {
		t.Fatalf("expected empty catalog, got %q", got)
	}
}

func TestParseIndices(t *testing.T) {
	cases := []struct {
		reply string
		want  []int
	}{
		{"1 3 5", []int{1, 3, 5}},
		{"Notes: 2, 4.", []int{2, 4}},
		{"none", nil},
		{"", nil},
	}
	for _, c := range cases {
		got := ParseIndices(c.reply)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("ParseIndices(%q) mismatch (-want +got):\n%s", c.reply, diff)
		}
	}
}
