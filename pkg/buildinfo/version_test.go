package buildinfo

import (
	"strings"
	"testing"
)

func TestStringIncludesAllFields(t *testing.T) {
	out := String()
	for _, want := range []string{Version, Commit, Date} {
		if !strings.Contains(out, want) {
			t.Fatalf("String() = %q, missing %q", out, want)
		}
	}
}

func TestTemplateIsValidCobraVersionTemplate(t *testing.T) {
	tpl := Template()
	if !strings.Contains(tpl, "{{.Name}}") {
		t.Fatalf("Template() = %q, expected a {{.Name}} placeholder", tpl)
	}
	if !strings.Contains(tpl, Version) {
		t.Fatalf("Template() = %q, expected to mention Version", tpl)
	}
}
