package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestDotCommandWritesDOTToFile(t *testing.T) {
	c := testCLI()
	output := t.TempDir() + "/out.dot"

	cmd := c.dotCommand()
	cmd.SetArgs([]string{writeFixture(t), "-o", output})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Fatalf("output does not look like DOT: %s", data)
	}
}

func TestDotCommandRejectsMissingFixture(t *testing.T) {
	c := testCLI()
	cmd := c.dotCommand()
	cmd.SetArgs([]string{"/nonexistent/fixture.json"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected Execute() to fail on a missing fixture")
	}
}
