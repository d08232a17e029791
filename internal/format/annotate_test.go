package format

import (
	"reflect"
	"testing"
)

func TestAnnotate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		content string
		want    []Span
	}{
		{"empty", "", nil},
		{"plain", "just text", []Span{{SpanText, "just text"}}},
		{"tag at start", "#work today", []Span{
			{SpanTag, "#work"}, {SpanText, " today"},
		}},
		{"tag mid sentence", "call mom #family", []Span{
			{SpanText, "call mom "}, {SpanTag, "#family"},
		}},
		{"hash inside word stays text", "tune in c#4 now", []Span{
			{SpanText, "tune in c#4 now"},
		}},
		{"bare hash stays text", "issue # 12", []Span{
			{SpanText, "issue # 12"},
		}},
		{"link", "see https://example.com/x for details", []Span{
			{SpanText, "see "}, {SpanLink, "https://example.com/x"}, {SpanText, " for details"},
		}},
		{"link at end", "read http://example.com", []Span{
			{SpanText, "read "}, {SpanLink, "http://example.com"},
		}},
		{"tag and link", "#todo https://example.com", []Span{
			{SpanTag, "#todo"}, {SpanText, " "}, {SpanLink, "https://example.com"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Annotate(tc.content)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Annotate(%q) = %+v, want %+v", tc.content, got, tc.want)
			}
		})
	}
}

func TestAnnotateRoundTrips(t *testing.T) {
	t.Parallel()
	content := "mix of #tags and https://example.com text"
	var rebuilt string
	for _, s := range Annotate(content) {
		rebuilt += s.Text
	}
	if rebuilt != content {
		t.Fatalf("spans lose content: %q != %q", rebuilt, content)
	}
}

func TestTags(t *testing.T) {
	t.Parallel()
	got := Tags("plan #work and #home_2 stuff")
	want := []string{"work", "home_2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tags = %v, want %v", got, want)
	}
	if Tags("nothing here") != nil {
		t.Fatalf("tagless content returned tags")
	}
}
