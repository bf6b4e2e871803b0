package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go2opsin/go2opsin/internal/config"
	"github.com/go2opsin/go2opsin/internal/opsin"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":                {err: nil, want: ExitSuccess},
		"plain error":        {err: errors.New("boom"), want: ExitConversionFailed},
		"explicit code":      {err: NewExitError(ExitMissingDependency), want: ExitMissingDependency},
		"code with cause":    {err: WithExitCode(ExitTimeout, errors.New("slow")), want: ExitTimeout},
		"wrapped exit error": {err: fmt.Errorf("outer: %w", NewExitError(ExitInvalidArguments)), want: ExitInvalidArguments},
		"opsin validation": {
			err:  &opsin.ValidationError{Field: "output_format", Message: "bad"},
			want: ExitInvalidArguments,
		},
		"config validation": {
			err:  fmt.Errorf("loading: %w", &config.ValidationError{Field: "timeout", Message: "bad"}),
			want: ExitInvalidArguments,
		},
		"spawn failure inside invocation error": {
			err:  &opsin.InvocationError{ExitCode: -1, Err: &opsin.SpawnError{Program: "java", Err: errors.New("not found")}},
			want: ExitMissingDependency,
		},
		"timeout inside invocation error": {
			err:  &opsin.InvocationError{ExitCode: -1, Err: fmt.Errorf("running java: %w", context.DeadlineExceeded)},
			want: ExitTimeout,
		},
		"non-zero exit": {
			err:  &opsin.InvocationError{ExitCode: 1},
			want: ExitConversionFailed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Messages(t *testing.T) {
	t.Parallel()

	silent := NewExitError(ExitConversionFailed)
	assert.True(t, Silent(silent))
	assert.Equal(t, "exit code 1", silent.Error())

	cause := errors.New("jar not found")
	loud := WithExitCode(ExitMissingDependency, cause)
	assert.False(t, Silent(loud))
	assert.Equal(t, "jar not found", loud.Error())
	assert.ErrorIs(t, loud, cause)

	assert.Nil(t, WithExitCode(ExitTimeout, nil))
	assert.False(t, Silent(errors.New("plain")))
}
