package output

import (
	"bytes"
	"strings"
	"testing"

	"twilly/internal/service"
)

func TestConversationLabel(t *testing.T) {
	tests := []struct {
		name string
		conv service.Conversation
		want string
	}{
		{
			name: "with unique name",
			conv: service.Conversation{SID: "CH01", UniqueName: "support", State: service.StateActive},
			want: "(CH01) support - active",
		},
		{
			name: "without unique name",
			conv: service.Conversation{SID: "CH02", State: service.StateClosed},
			want: "CH02 - closed",
		},
		{
			name: "whitespace unique name",
			conv: service.Conversation{SID: "CH03", UniqueName: "  ", State: service.StateInactive},
			want: "CH03 - inactive",
		},
		{
			name: "newline in unique name",
			conv: service.Conversation{SID: "CH04", UniqueName: "a\nb", State: service.StateActive},
			want: "(CH04) a b - active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConversationLabel(tt.conv); got != tt.want {
				t.Errorf("ConversationLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSidLabels(t *testing.T) {
	if got := SyncServiceLabel(service.SyncService{SID: "IS1", UniqueName: "default"}); got != "(IS1) default" {
		t.Errorf("unexpected service label %q", got)
	}
	if got := DocumentLabel(service.Document{SID: "ET1"}); got != "ET1" {
		t.Errorf("unexpected document label %q", got)
	}
	if got := MapLabel(service.Map{SID: "MP1", UniqueName: "users"}); got != "(MP1) users" {
		t.Errorf("unexpected map label %q", got)
	}
	if got := MapItemLabel(service.MapItem{Key: ""}); got != "(empty key)" {
		t.Errorf("unexpected map item label %q", got)
	}
}

func TestFormatFound(t *testing.T) {
	var buf bytes.Buffer
	FormatFound(&buf, 2, "conversations")
	FormatNoneFound(&buf, "Sync Services")

	expected := "Found 2 conversations.\nNo Sync Services found.\n\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatDetails(t *testing.T) {
	var buf bytes.Buffer
	doc := service.Document{
		SID:        "ET1",
		ServiceSID: "IS1",
		Revision:   "0",
		Data:       map[string]any{"greeting": "hello"},
	}

	if err := FormatDetails(&buf, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"sid: ET1\n", "service_sid: IS1\n", "data:\n  greeting: hello\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "unique_name") {
		t.Errorf("empty unique_name should be omitted:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n\n") {
		t.Errorf("expected a trailing blank line, got %q", got)
	}
}
