package worker

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/farfania/oblivion-launcher/internal/jsonx"
)

// MaxLineSize bounds a single protocol line. Validation results carry the
// full version manifest, so lines can be large.
const MaxLineSize = 16 << 20

// Encoder writes newline delimited JSON values
type Encoder struct {
	mu sync.Mutex
	w  io.Writer
}

// NewEncoder creates an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes v as a single line
func (e *Encoder) Encode(v any) error {
	data, err := jsonx.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Decoder reads newline delimited worker messages
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder creates a decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	return &Decoder{scanner: scanner}
}

// Next returns the next message. Blank lines are skipped. io.EOF is returned
// at the end of the stream. A malformed line returns an error but leaves the
// decoder usable.
func (d *Decoder) Next() (Message, error) {
	for d.scanner.Scan() {
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		// Scanner reuses its buffer
		return Decode(bytes.Clone(line))
	}
	if err := d.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
