package opsin

import (
	"fmt"
	"strings"
)

// Demultiplex reconciles a finished invocation with the shape of the request
// that produced it. For a batch of n names it returns exactly n values, with
// "" marking names OPSIN could not interpret. A non-zero exit is reported as
// an *InvocationError whatever the shape.
func Demultiplex(inv *Invocation, shape Shape, n int, dec *Decoder) (string, []string, error) {
	if inv == nil {
		return "", nil, &InvocationError{ExitCode: -1, Err: fmt.Errorf("no invocation result")}
	}
	if !inv.Success() {
		return "", nil, &InvocationError{
			ExitCode: inv.ExitCode,
			Stderr:   dec.Decode(inv.Stderr),
		}
	}

	text := strings.TrimRight(dec.Decode(inv.Stdout), "\r\n")

	if shape == ShapeScalar {
		return stripLineBreaks(text), nil, nil
	}

	values, err := alignLines(text, n)
	if err != nil {
		return "", nil, &InvocationError{
			ExitCode: inv.ExitCode,
			Stderr:   dec.Decode(inv.Stderr),
			Err:      err,
		}
	}
	return "", values, nil
}

// alignLines splits text into exactly n positional values. Trailing names
// OPSIN produced no line for are padded with "".
func alignLines(text string, n int) ([]string, error) {
	values := make([]string, n)
	if n == 0 {
		return values, nil
	}

	// The trailing terminator was trimmed above, so an all-failed batch
	// arrives as "" and must not be mistaken for one line of output.
	var lines []string
	if text != "" || n == 1 {
		lines = strings.Split(text, "\n")
	}
	if len(lines) > n {
		return nil, fmt.Errorf("interpreter produced %d lines for %d names", len(lines), n)
	}
	for i, l := range lines {
		values[i] = strings.TrimRight(l, "\r")
	}
	return values, nil
}

func stripLineBreaks(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
