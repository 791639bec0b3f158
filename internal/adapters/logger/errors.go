package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

type metadataProvider interface {
	Metadata() map[string]any
}

type multiUnwrapper interface {
	Unwrap() []error
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries flattens err into one entry per message. Joined errors
// contribute their members in order. Levels without a message pass their
// metadata on to the next level.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	var walk func(error)
	walk = func(current error) {
		for current != nil {
			if joined, ok := current.(multiUnwrapper); ok {
				for _, member := range joined.Unwrap() {
					walk(member)
				}
				return
			}

			m, ok := current.(messager)
			if !ok {
				entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
				pending = nil
				return
			}

			var metadata map[string]any
			if p, ok := current.(metadataProvider); ok {
				metadata = p.Metadata()
			}

			if m.Message() == "" {
				if len(metadata) > 0 {
					pending = merge(pending, metadata)
				}
			} else {
				entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: merge(metadata, pending)})
				pending = nil
			}
			current = errors.Unwrap(current)
		}
	}

	walk(err)
	return entries
}

func merge(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

// formatErrorEntries renders entries as an "Error:" line followed by an
// indented "Caused by:" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head, indent = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
