package request

import (
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Run("empty selects json", func(t *testing.T) {
		format, err := ParseFormat("", FormatMarkdown)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if format != FormatJSON {
			t.Errorf("Expected 'json', got '%s'", format)
		}
	})

	t.Run("allowed format is normalized", func(t *testing.T) {
		format, err := ParseFormat(" Markdown ", FormatMarkdown)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if format != FormatMarkdown {
			t.Errorf("Expected 'markdown', got '%s'", format)
		}
	})

	t.Run("json is always allowed", func(t *testing.T) {
		if _, err := ParseFormat("json"); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("format not in allowed list returns error", func(t *testing.T) {
		_, err := ParseFormat("html", FormatMarkdown)
		if err == nil {
			t.Error("Expected error for disallowed format, got nil")
		}
	})
}
