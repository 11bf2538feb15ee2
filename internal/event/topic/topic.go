package topic

import "strings"

// Topic is a dot-separated event name such as "marks.changed". Used as
// a subscription pattern it may contain wildcard segments.
type Topic string

const (
	// Any matches exactly one segment.
	Any = "*"
	// AnyDepth matches zero or more segments.
	AnyDepth = "**"
)

func (t Topic) String() string { return string(t) }

// Segments splits t at the dots. The empty topic has no segments.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), ".")
}

// IsValid reports whether t is non-empty and has no empty segment.
func (t Topic) IsValid() bool {
	return t != "" && !strings.Contains("."+string(t)+".", "..")
}

// Matches reports whether t is selected by pattern.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(name, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		pattern = pattern[1:]
		if head == AnyDepth {
			for skip := 0; skip <= len(name); skip++ {
				if match(name[skip:], pattern) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 || (head != Any && head != name[0]) {
			return false
		}
		name = name[1:]
	}
	return len(name) == 0
}
