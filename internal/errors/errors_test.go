package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    Code
		wantMsg string
		wantCat Category
	}{
		{
			name:    "non-element argument",
			code:    CodeNotElement,
			wantMsg: "Component passed isn't an element",
			wantCat: CategoryArgument,
		},
		{
			name:    "element gone",
			code:    CodeElementGone,
			wantMsg: "Element doesn't exist anymore",
			wantCat: CategoryDocument,
		},
		{
			name:    "duplicate alias",
			code:    CodeDuplicateAlias,
			wantMsg: "Alias must be unique",
			wantCat: CategoryRegistry,
		},
		{
			name:    "unknown error code",
			code:    999,
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %d, want %d", err.Code, tt.code)
			}
		})
	}
}

func TestForgeError_Error(t *testing.T) {
	err := New(CodeUnknownArchetype)
	want := "[forge] 102 : Forged archetype doesn't exist"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.WithSubject("card")
	want = "[forge] 102 : Forged archetype doesn't exist (card)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestForgeError_Is(t *testing.T) {
	err := New(CodeElementGone).WithSubject("sidebar")

	if !stderrors.Is(err, ErrElementGone) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, ErrParentNotFound) {
		t.Error("errors.Is should not match a different code")
	}

	wrapped := fmt.Errorf("lookup: %w", err)
	if !Is(wrapped, ErrElementGone) {
		t.Error("Is should see through fmt wrapping")
	}
}

func TestForgeError_Wrap(t *testing.T) {
	inner := stderrors.New("yaml: line 3")
	outer := New(CodeInvalidArchetypeFile).Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	if !strings.HasSuffix(outer.Error(), ": yaml: line 3") {
		t.Errorf("Error() = %q, want cause suffix", outer.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeInvalidConfig) != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	fe := New(CodeDuplicateAlias)
	if FromError(fmt.Errorf("ctx: %w", fe), CodeInvalidConfig) != fe {
		t.Error("FromError should return a coded error as-is")
	}

	stdErr := stderrors.New("boom")
	result := FromError(stdErr, CodeInvalidConfig)
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Code != CodeInvalidConfig {
		t.Errorf("Code = %d, want %d", result.Code, CodeInvalidConfig)
	}
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(fmt.Errorf("x: %w", New(CodeParentNotFound)))
	if !ok || code != CodeParentNotFound {
		t.Errorf("CodeOf = %d, %v; want %d, true", code, ok, CodeParentNotFound)
	}
	if _, ok := CodeOf(stderrors.New("plain")); ok {
		t.Error("CodeOf should report false for uncoded errors")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeElementGone).
		WithSubject("sidebar").
		WithSuggestion("Check HasAlias before looking the element up")

	out := err.Format()
	for _, want := range []string{
		"ERROR 201: Element doesn't exist anymore",
		"subject: sidebar",
		"no longer attached",
		"Hint: Check HasAlias",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeDuplicateAlias).WithSubject("nav")
	want := "301: Alias must be unique [nav]"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CodeParentNotFound).WithSubject("#missing")
	got := err.FormatJSON()

	if !strings.HasPrefix(got, `{"code":202,"category":"document"`) {
		t.Errorf("FormatJSON() = %s", got)
	}
	if !strings.Contains(got, `"subject":"#missing"`) {
		t.Errorf("FormatJSON() missing subject: %s", got)
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) != len(registry) {
		t.Fatalf("len = %d, want %d", len(codes), len(registry))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
}

func TestGetTemplate(t *testing.T) {
	tmpl, ok := GetTemplate(CodeDuplicateAlias)
	if !ok {
		t.Fatal("expected template for 301")
	}
	if tmpl.Category != CategoryRegistry {
		t.Errorf("Category = %q, want %q", tmpl.Category, CategoryRegistry)
	}
	if _, ok := GetTemplate(999); ok {
		t.Error("GetTemplate(999) should not exist")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, New(CodeNotElement))
	if !strings.Contains(buf.String(), "ERROR 101") {
		t.Errorf("PrintError output = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError output = %q", buf.String())
	}
}

func TestCompact(t *testing.T) {
	err := New(CodeUnknownArchetype).WithSubject("card")
	if got := Compact(fmt.Errorf("use: %w", err)); got != err.FormatCompact() {
		t.Errorf("Compact = %q, want %q", got, err.FormatCompact())
	}
	if got := Compact(stderrors.New("plain")); got != "plain" {
		t.Errorf("Compact = %q, want plain", got)
	}
}
