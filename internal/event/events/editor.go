package events

import (
	"github.com/dshills/linecore/internal/engine/buffer"
	"github.com/dshills/linecore/internal/engine/cursor"
	"github.com/dshills/linecore/internal/event/topic"
)

// Editor event topics.
const (
	// TopicLineCountChanged is published when an edit changes the number
	// of lines.
	TopicLineCountChanged topic.Topic = "buffer.lines.count_changed"

	// TopicMarksChanged is published when bookmarks are toggled, cleared,
	// or discarded because their lines were destroyed.
	TopicMarksChanged topic.Topic = "marks.changed"

	// TopicSelectionChanged is published when a command re-sets the
	// selection.
	TopicSelectionChanged topic.Topic = "cursor.selection_changed"

	// TopicIndentChanged is published when the indent width or tab mode
	// changes.
	TopicIndentChanged topic.Topic = "indent.changed"

	// TopicEOLChanged is published when the external line ending changes.
	TopicEOLChanged topic.Topic = "eol.changed"

	// TopicLanguageChanged is published when a language is selected.
	TopicLanguageChanged topic.Topic = "language.changed"

	// TopicConfigReloaded is published when settings were reloaded from
	// disk and applied.
	TopicConfigReloaded topic.Topic = "config.reloaded"
)

// LineCountChanged reports a new line count.
type LineCountChanged struct {
	Old int
	New int
}

// MarksChanged reports the marked lines after a change.
type MarksChanged struct {
	// Lines are the marked line indices, ascending.
	Lines []int
}

// SelectionChanged reports a selection re-set by a command.
type SelectionChanged struct {
	Selection cursor.Selection

	// Command names the command that set it.
	Command string
}

// IndentChanged reports new indentation settings.
type IndentChanged struct {
	Width   int
	UseTabs bool
}

// EOLChanged reports a new external line ending.
type EOLChanged struct {
	Old buffer.LineEnding
	New buffer.LineEnding
}

// LanguageChanged reports the selected language and the indent policy it
// chose.
type LanguageChanged struct {
	Language string
	Policy   string
}

// ConfigReloaded reports a settings file that was reloaded.
type ConfigReloaded struct {
	Path string
}
