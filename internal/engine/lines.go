package engine

// MoveLinesUp swaps the lines touched by the selection with the line
// above them. The moved lines stay selected.
//
// The line above is deleted and re-inserted below the block, so it gets a
// new identity. Bookmarks on every affected line are cleared first, and
// undoing the move does not bring them back.
func (e *Editor) MoveLinesUp() error {
	first, last := e.sel.Lines()
	if first == 0 {
		return nil
	}
	return e.Transaction("Move lines up", func() error {
		if err := e.ClearMarks(first-1, last); err != nil {
			return err
		}
		if err := e.moveLine(first-1, last); err != nil {
			return err
		}
		e.selectLines(first-1, last-1, "Move lines up")
		return nil
	})
}

// MoveLinesDown swaps the lines touched by the selection with the line
// below them.
func (e *Editor) MoveLinesDown() error {
	first, last := e.sel.Lines()
	if last+1 >= e.buf.Len() {
		return nil
	}
	return e.Transaction("Move lines down", func() error {
		if err := e.ClearMarks(first, last+1); err != nil {
			return err
		}
		if err := e.moveLine(last+1, first); err != nil {
			return err
		}
		e.selectLines(first+1, last+1, "Move lines down")
		return nil
	})
}

// moveLine deletes line from and inserts its text at index to.
func (e *Editor) moveLine(from, to int) error {
	text, err := e.buf.Get(from)
	if err != nil {
		return err
	}
	if err := e.DeleteLine(from); err != nil {
		return err
	}
	return e.InsertLine(to, text)
}

// DeleteLines removes every line the selection touches.
func (e *Editor) DeleteLines() error {
	first, last := e.sel.Lines()
	return e.DeleteRange(first, last+1)
}

// Duplicate inserts a copy of the selected text after the selection and
// keeps the original selected. Without a selection the cursor line is
// duplicated below itself.
func (e *Editor) Duplicate() error {
	if e.sel.IsEmpty() {
		line := e.sel.Head.Line
		text, _ := e.buf.Get(line)
		return e.InsertLine(line+1, text)
	}
	sel := e.sel
	text := e.SelectedText()
	return e.Transaction("Duplicate", func() error {
		end := sel.End()
		if err := e.replaceRange("Duplicate", end, end, text); err != nil {
			return err
		}
		e.setSelection(sel, "Duplicate")
		return nil
	})
}
