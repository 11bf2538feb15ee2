// Package event provides the synchronous event bus through which the
// editor reports state changes.
//
// The editor publishes an event after every change whose observers care
// about it: the line count changing, bookmarks being discarded, the
// selection being re-set by a command, and the indentation, line ending,
// or language settings changing. Plugins and front ends subscribe to the
// topics they need; the engine never depends on who is listening.
//
// # Event Topics
//
// Events use hierarchical topics with dot notation (see package topic):
//
//	buffer.lines.count_changed   - The number of lines changed
//	marks.changed                - Bookmarks were added, removed, or discarded
//	cursor.selection_changed     - A command re-set the selection
//	indent.changed               - Indent width or tab mode changed
//
// The topics and payload types published by the editor live in package
// events.
//
// # Delivery
//
// Publish runs every matching handler in the publisher's goroutine, in
// priority order (lower values first) and, within one priority, in
// subscription order. A handler that returns an error or panics does not
// stop delivery to the others; its failure is logged and returned from
// Publish wrapped in a HandlerError or PanicError.
//
// # Usage
//
//	bus := event.NewBus()
//	sub, err := bus.Subscribe("marks.*", event.HandlerFunc(
//	    func(ctx context.Context, ev any) error {
//	        e := ev.(event.Event[events.MarksChanged])
//	        fmt.Println(e.Payload.Lines)
//	        return nil
//	    }))
//	defer bus.Unsubscribe(sub)
package event
