package opsin

import "strings"

// Shape records whether a request carried one name or a sequence.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeBatch
)

func (s Shape) String() string {
	if s == ShapeBatch {
		return "batch"
	}
	return "scalar"
}

// Request is a single name or an ordered batch of names.
type Request struct {
	shape Shape
	names []string
}

// Scalar builds a single-name request.
func Scalar(name string) Request {
	return Request{shape: ShapeScalar, names: []string{name}}
}

// Batch builds a request for an ordered sequence of names. The result of a
// batch request always has one value per name, in the same order.
func Batch(names ...string) Request {
	cp := make([]string, len(names))
	copy(cp, names)
	return Request{shape: ShapeBatch, names: cp}
}

// Shape reports the request shape.
func (r Request) Shape() Shape { return r.shape }

// Names returns a copy of the requested names.
func (r Request) Names() []string {
	cp := make([]string, len(r.names))
	copy(cp, r.names)
	return cp
}

// Len returns the number of names.
func (r Request) Len() int { return len(r.names) }

func (r Request) validate() error {
	if len(r.names) == 0 {
		return &ValidationError{Field: "names", Message: "at least one chemical name is required"}
	}
	if r.shape == ShapeBatch {
		// A line terminator inside a batch entry would shift every later result.
		for _, n := range r.names {
			if strings.ContainsAny(n, "\r\n") {
				return &ValidationError{
					Field:   "names",
					Value:   n,
					Message: "batch names must not contain line breaks",
				}
			}
		}
	}
	return nil
}

// payload renders the staged file contents: the raw name for a scalar
// request, or one newline-terminated line per name for a batch.
func (r Request) payload() []byte {
	if r.shape == ShapeScalar {
		return []byte(r.names[0])
	}
	var b strings.Builder
	for _, n := range r.names {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
