package errors

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"empty route path", "R001", "Route has an empty path", CategoryRoute},
		{"unknown handler", "M001", "Manifest references an unknown handler", CategoryManifest},
		{"missing config", "C001", "Configuration file not found", CategoryConfig},
		{"unknown code", "Z999", "Unknown error", ""},
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
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "url")
	if err.Message != `flag "url" is required` {
		t.Errorf("Message = %q, want %q", err.Message, `flag "url" is required`)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New("R002"), "R002: Route registered without a handler"},
		{&Error{Message: "plain"}, "plain"},
		{New("R001").WithDetail(`route "app://"`), `R001: Route has an empty path (route "app://")`},
		{New("M002").Wrap(io.EOF), "M002: Failed to fetch route manifest: EOF"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapAndIs(t *testing.T) {
	err := New("M002").Wrap(io.ErrUnexpectedEOF)

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is should see the wrapped error")
	}
	if !errors.Is(err, New("M002")) {
		t.Error("errors.Is should match errors with the same code")
	}
	if errors.Is(err, New("M001")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "U001") != nil {
		t.Error("FromError(nil) should return nil")
	}

	orig := New("R001")
	if got := FromError(orig, "U001"); got != orig {
		t.Error("FromError should return existing *Error unchanged")
	}

	plain := errors.New("boom")
	got := FromError(plain, "U001")
	if got.Code != "U001" || !errors.Is(got, plain) {
		t.Errorf("FromError(plain) = %v, want U001 wrapping boom", got)
	}
}

func TestHasCode(t *testing.T) {
	err := New("C002").Wrap(io.EOF)
	wrapped := errors.Join(errors.New("loading"), err)

	if !HasCode(wrapped, "C002") {
		t.Error("HasCode should find code through wrapping")
	}
	if HasCode(wrapped, "C001") {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(io.EOF, "C002") {
		t.Error("HasCode matched a plain error")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("M001").
		WithDetail(`handler "profile" is not registered`).
		Wrap(io.EOF)
	out := err.Format()

	for _, want := range []string{
		"ERROR M001: Manifest references an unknown handler",
		`handler "profile" is not registered`,
		"Cause: EOF",
		"Hint: Use one of the registered handler names",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() emitted colors while disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	if got := New("X001").FormatCompact(); got != "X001: No route matches the URL" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, New("C001"))
	if !strings.Contains(buf.String(), "ERROR C001") {
		t.Errorf("Fprint(*Error) = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, errors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint(error) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}

func TestCodesSortedAndRegistered(t *testing.T) {
	codes := Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("Codes() not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" {
			t.Errorf("code %s has no message", code)
		}
	}
}
