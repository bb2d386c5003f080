package main

import (
	"strings"
	"testing"
)

func TestReplCmd(t *testing.T) {
	in := "2 + 3\n=\nhistory\nMS\nmemory\nquit\n9 9\n"

	out, err := execute(t, in, "repl")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}

	want := strings.Join([]string{
		"2 +",
		"3",
		"5",
		"2 + 3 = 5",
		"5",
		"M0 5",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
}

func TestReplCmdSkipsUnknownKeys(t *testing.T) {
	out, err := execute(t, "7 nope\n4\n", "repl")
	if err != nil {
		t.Fatalf("repl: %v", err)
	}
	if !strings.Contains(out, `unknown key "nope"`) {
		t.Errorf("expected the key error on stderr, got %q", out)
	}
	if !strings.HasSuffix(out, "4\n") {
		t.Errorf("output = %q, want the line after the bad one applied", out)
	}
}
