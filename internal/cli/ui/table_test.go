package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "NAME", "KIND")
	table.AddRow("v_i64", "positional")
	table.AddRow("v_str", "keyword-only")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "NAME   KIND" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "─────  ────────────" {
		t.Errorf("unexpected separator %q", lines[1])
	}
	if lines[2] != "v_i64  positional" {
		t.Errorf("unexpected row %q", lines[2])
	}
	if lines[3] != "v_str  keyword-only" {
		t.Errorf("unexpected row %q", lines[3])
	}
}

func TestTable_ShortRowsAndNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "A", "B")
	table.AddRow("x")
	table.Render()
	if !strings.Contains(buf.String(), "\nx\n") {
		t.Errorf("expected short row padded and trimmed, got %q", buf.String())
	}

	buf.Reset()
	NewTable(&buf, true).Render()
	if buf.Len() != 0 {
		t.Errorf("expected no output without headers, got %q", buf.String())
	}
}

func TestKeyValueTable_Render(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Class", "Derived")
	kv.AddRow("Type", "testing.Derived")
	kv.Render()

	want := "Class: Derived\nType:  testing.Derived\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Classes", true)
	if buf.String() != "Classes\n───────\n" {
		t.Errorf("unexpected header %q", buf.String())
	}
}
