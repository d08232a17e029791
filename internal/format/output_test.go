package format

import (
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	if err := Write(&b, map[string]string{"k": "v"}, "json", false); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	if got := b.String(); got != "{\"k\":\"v\"}\n" {
		t.Fatalf("json output = %q", got)
	}

	b.Reset()
	if err := Write(&b, map[string]string{"k": "v"}, "", false); err != nil {
		t.Fatalf("Write with empty format: %v", err)
	}

	if err := Write(&b, nil, "yaml", false); err == nil {
		t.Fatalf("unknown format accepted")
	}
}
