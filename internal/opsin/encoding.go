package opsin

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Decoder turns captured process output into text.
type Decoder struct {
	enc encoding.Encoding
}

// NewDecoder returns a decoder for the named encoding (WHATWG labels such as
// "utf-8", "latin1", "windows-1252"). An empty name means UTF-8.
func NewDecoder(name string) (*Decoder, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return &Decoder{enc: enc}, nil
}

// Decode converts b to a string. Invalid sequences become U+FFFD.
func (d *Decoder) Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if d == nil || d.enc == nil {
		return string(b)
	}
	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &ValidationError{
			Field:   "output_encoding",
			Value:   name,
			Message: fmt.Sprintf("unknown output encoding %q", name),
		}
	}
	return enc, nil
}
