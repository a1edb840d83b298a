package views

import (
	"strings"
	"testing"
)

func TestRenderTaskPanelEmpty(t *testing.T) {
	out := RenderTaskPanel(TaskPanelData{})
	if !strings.Contains(out, EmptyText) {
		t.Fatalf("expected empty text, got %q", out)
	}
	if !strings.Contains(out, "Total: 0 | Done: 0") {
		t.Fatalf("expected counts, got %q", out)
	}
	if strings.Contains(out, "[C]") {
		t.Fatalf("clear action should be disabled, got %q", out)
	}
}

func TestRenderTaskPanelRows(t *testing.T) {
	out := RenderTaskPanel(TaskPanelData{
		Total:     3,
		Completed: 1,
		Rows: []TaskRowData{
			{Position: 1, Text: "Buy milk", Completed: true},
			{Position: 2, Text: "Walk the dog", Selected: true},
			{Position: 3, Text: "Call mom", Editing: true, EditView: "Call dad"},
		},
	})
	for _, want := range []string{"Total: 3 | Done: 1", "Clear done [C]", "[x] Buy milk", "> ", "[ ] Walk the dog", "Call dad"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
	if strings.Contains(out, "Call mom") {
		t.Fatalf("editing row should show the edit field, not the text: %q", out)
	}
}

func TestRenderAppLayout(t *testing.T) {
	out := RenderApp(AppData{
		Header:     Title,
		Body:       "body",
		Input:      "> Write a task",
		StatusLine: "task added",
		Footer:     "keys",
	})
	for _, want := range []string{Title, "body", "Write a task", "task added", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestRenderCommandPalette(t *testing.T) {
	if RenderCommandPalette(false, "add x") != "" {
		t.Fatal("inactive palette should render nothing")
	}
	if got := RenderCommandPalette(true, "add x"); got != "command: /add x" {
		t.Fatalf("unexpected palette: %q", got)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if RenderMarkdown("   ") != "" {
		t.Fatal("blank markdown should render empty")
	}
	if out := RenderMarkdown("**keys**"); !strings.Contains(out, "keys") {
		t.Fatalf("expected rendered markdown to keep text, got %q", out)
	}
}
