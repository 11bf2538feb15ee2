package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeEditor(b *testing.B, lines int) *Editor {
	b.Helper()
	var sb strings.Builder
	line := "    " + strings.Repeat("x", 76) + "\n"
	for i := 0; i < lines; i++ {
		sb.WriteString(line)
	}
	e, err := New(WithContent(sb.String()))
	if err != nil {
		b.Fatal(err)
	}
	return e
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkEditorText(b *testing.B) {
	e := setupLargeEditor(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Text()
	}
}

func BenchmarkEditorToAbsolute(b *testing.B) {
	e := setupLargeEditor(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.ToAbsolute(i%10000, 40)
	}
}

func BenchmarkEditorToLineCol(b *testing.B) {
	e := setupLargeEditor(b, 10000)
	total := e.TotalLength()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _, _ = e.ToLineCol(i % total)
	}
}

// ============================================================================
// Write Operation Benchmarks
// ============================================================================

func BenchmarkEditorInsertLine(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.InsertLine(500, "inserted")
	}
}

func BenchmarkEditorTypeText(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	e.SetCursorPosition(500, 10)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.TypeText("x")
	}
}

func BenchmarkEditorIndentSelection(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	e.SetSelection(Pos(0, 0), Pos(999, 0))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.IndentSelection(i%2 == 0)
	}
}

func BenchmarkEditorUndoRedo(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	_ = e.SetLine(10, "changed")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Undo()
		_ = e.Redo()
	}
}

// ============================================================================
// Completion Benchmarks
// ============================================================================

func BenchmarkEditorCandidates(b *testing.B) {
	e := setupLargeEditor(b, 2000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Candidates("xx")
	}
}
