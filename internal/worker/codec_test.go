package worker

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	if err := enc.Encode(Execute(FuncValidateJava, "/data")); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if err := enc.Encode(Execute(FuncValidateEverything, "srv", false)); err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[1] != `{"task":"execute","function":"validateEverything","argsArr":["srv",false]}` {
		t.Errorf("Unexpected line %s", lines[1])
	}
}

func TestDecoder(t *testing.T) {
	input := strings.Join([]string{
		`{"context":"validate","data":"distribution"}`,
		``,
		`garbage`,
		`{"context":"validate","data":"version"}`,
	}, "\n")
	dec := NewDecoder(strings.NewReader(input))

	msg, err := dec.Next()
	if err != nil || msg.(Validate).Data != DataDistribution {
		t.Fatalf("Unexpected first message %#v, %v", msg, err)
	}

	_, err = dec.Next()
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Expected malformed error, got %v", err)
	}

	msg, err = dec.Next()
	if err != nil || msg.(Validate).Data != DataVersion {
		t.Fatalf("Unexpected third message %#v, %v", msg, err)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}
}
