// Package events defines the topics and payload types published by the
// editor.
//
// Payloads are plain values; subscribers receive them wrapped in an
// event.Event and may keep them after the handler returns.
package events
