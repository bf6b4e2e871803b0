package opsin

// Status tags a Result as carrying a payload or a failure cause.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
)

func (s Status) String() string {
	if s == StatusFailed {
		return "failed"
	}
	return "ok"
}

// Result is the outcome of one conversion.
//
// A StatusOK result carries a payload shaped like the request: Value for a
// scalar request, Values for a batch. An empty string in Values means that
// name could not be interpreted. A StatusFailed result carries Err instead
// and no payload, so it cannot be confused with a per-name failure.
type Result struct {
	Status Status
	Shape  Shape
	// Diagnostics holds whatever OPSIN reported on its diagnostic stream.
	// It is populated for successful and failed runs alike.
	Diagnostics Diagnostics
	// Err is set only when Status is StatusFailed.
	Err *InvocationError

	value  string
	values []string
}

func okScalar(value string, diags Diagnostics) *Result {
	return &Result{Status: StatusOK, Shape: ShapeScalar, value: value, Diagnostics: diags}
}

func okBatch(values []string, diags Diagnostics) *Result {
	return &Result{Status: StatusOK, Shape: ShapeBatch, values: values, Diagnostics: diags}
}

func failed(shape Shape, cause *InvocationError, diags Diagnostics) *Result {
	return &Result{Status: StatusFailed, Shape: shape, Err: cause, Diagnostics: diags}
}

// OK reports whether the invocation succeeded.
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusOK
}

// Value returns the converted structure for a scalar request. The boolean is
// false for failed or batch results.
func (r *Result) Value() (string, bool) {
	if !r.OK() || r.Shape != ShapeScalar {
		return "", false
	}
	return r.value, true
}

// Values returns the positionally aligned structures for a batch request.
// The boolean is false for failed or scalar results.
func (r *Result) Values() ([]string, bool) {
	if !r.OK() || r.Shape != ShapeBatch {
		return nil, false
	}
	cp := make([]string, len(r.values))
	copy(cp, r.values)
	return cp, true
}

// Failures returns the indexes of batch entries that could not be interpreted.
func (r *Result) Failures() []int {
	values, ok := r.Values()
	if !ok {
		return nil
	}
	var idx []int
	for i, v := range values {
		if v == "" {
			idx = append(idx, i)
		}
	}
	return idx
}

// Warning returns the aggregated diagnostic text, or "".
func (r *Result) Warning() string {
	if r == nil {
		return ""
	}
	return r.Diagnostics.Aggregate()
}
