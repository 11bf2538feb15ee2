// Package topic provides hierarchical topic names and wildcard matching
// for the event bus.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	buffer.lines.count_changed
//	cursor.selection_changed
//	config.reloaded
//
// # Wildcards
//
// Two wildcard patterns are supported:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	buffer.*          matches buffer.saved (not buffer.lines.count_changed)
//	buffer.**         matches buffer.saved, buffer.lines.count_changed
//	*.changed         matches indent.changed, eol.changed
//	**                matches everything
package topic
