// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"twilly/internal/service"
)

// ConversationLabel formats a conversation for lists and menus.
// Format: "({SID}) {UNIQUE_NAME} - {STATE}", or "{SID} - {STATE}" without a unique name.
func ConversationLabel(c service.Conversation) string {
	name := normalizeName(c.UniqueName)
	if name == "" {
		return fmt.Sprintf("%s - %s", c.SID, c.State)
	}
	return fmt.Sprintf("(%s) %s - %s", c.SID, name, c.State)
}

// FormatConversation writes a conversation line.
func FormatConversation(w io.Writer, c service.Conversation) {
	fmt.Fprintln(w, ConversationLabel(c))
}

// SyncServiceLabel formats a Sync service as "({SID}) {UNIQUE_NAME}".
func SyncServiceLabel(s service.SyncService) string {
	return sidLabel(s.SID, s.UniqueName)
}

// DocumentLabel formats a Sync document as "({SID}) {UNIQUE_NAME}".
func DocumentLabel(d service.Document) string {
	return sidLabel(d.SID, d.UniqueName)
}

// MapLabel formats a Sync map as "({SID}) {UNIQUE_NAME}".
func MapLabel(m service.Map) string {
	return sidLabel(m.SID, m.UniqueName)
}

// MapItemLabel formats a map item by its key.
func MapItemLabel(item service.MapItem) string {
	if key := normalizeName(item.Key); key != "" {
		return key
	}
	return "(empty key)"
}

// FormatFound writes "Found {N} {NOUNS}.".
func FormatFound(w io.Writer, n int, nouns string) {
	fmt.Fprintf(w, "Found %d %s.\n", n, nouns)
}

// FormatNoneFound writes "No {NOUNS} found." followed by a blank line.
func FormatNoneFound(w io.Writer, nouns string) {
	fmt.Fprintf(w, "No %s found.\n\n", nouns)
}

// FormatDetails dumps v as YAML followed by a blank line.
func FormatDetails(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode details: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode details: %w", err)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func sidLabel(sid, uniqueName string) string {
	name := normalizeName(uniqueName)
	if name == "" {
		return sid
	}
	return fmt.Sprintf("(%s) %s", sid, name)
}

// normalizeName normalizes a resource name for display.
// Newlines become spaces; whitespace-only names become empty.
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")
	if strings.TrimSpace(name) == "" {
		return ""
	}
	return name
}
