package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/propstore/winspskb/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "property definition",
			ID:       "{d5cdd502-2e9c-101b-9397-08002b2cf9ae}/2",
		}
		assert.Equal(t, "property definition with ID {d5cdd502-2e9c-101b-9397-08002b2cf9ae}/2 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("source", "docs")
		assert.Equal(t, "source with ID docs not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("definition", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "precedence",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field precedence: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("property_identifier", -1, "must be non-negative")
		assert.Contains(t, err.Error(), "property_identifier")
		assert.Contains(t, err.Error(), "must be non-negative")
	})
}

func TestMalformedIdentifierError(t *testing.T) {
	t.Run("with source", func(t *testing.T) {
		err := &pkgerrors.MalformedIdentifierError{
			Source: "docs",
			Field:  "format_identifier",
			Value:  "not-a-guid",
		}
		assert.Equal(t, `malformed format_identifier "not-a-guid" from source docs`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrMalformedIdentifier))
	})

	t.Run("without source", func(t *testing.T) {
		err := pkgerrors.NewMalformedIdentifier("", "property_identifier", "abc", nil)
		assert.Equal(t, `malformed property_identifier "abc"`, err.Error())
		assert.True(t, pkgerrors.IsMalformedIdentifier(err))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("invalid UUID length")
		err := pkgerrors.NewMalformedIdentifier("headers", "format_identifier", "xyz", base)
		assert.Equal(t, base, err.Unwrap())
	})
}

func TestSourceUnavailableError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		base := errors.New("no such file or directory")
		err := &pkgerrors.SourceUnavailableError{
			Source: "system",
			Path:   "/data/system.yaml",
			Err:    base,
		}
		assert.Contains(t, err.Error(), "system")
		assert.Contains(t, err.Error(), "/data/system.yaml")
		assert.True(t, errors.Is(err, pkgerrors.ErrSourceUnavailable))
		assert.Equal(t, base, err.Unwrap())
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewSourceUnavailable("docs", "", errors.New("read failed"))
		assert.True(t, pkgerrors.IsSourceUnavailable(err))
	})
}

func TestPrecedenceError(t *testing.T) {
	t.Run("with source", func(t *testing.T) {
		err := &pkgerrors.PrecedenceError{
			Source:  "wiki",
			Message: "not in recognized source list",
		}
		assert.Equal(t, `precedence configuration error for source "wiki": not in recognized source list`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without source", func(t *testing.T) {
		err := pkgerrors.NewPrecedenceError("", "precedence order is empty")
		assert.Contains(t, err.Error(), "precedence order is empty")
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		base := errors.New("permission denied")
		err := &pkgerrors.GenerationError{
			Target: "knowledge base",
			Path:   "/out/winsps.yaml",
			Err:    base,
		}
		assert.Contains(t, err.Error(), "knowledge base")
		assert.Contains(t, err.Error(), "/out/winsps.yaml")
		assert.Equal(t, base, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("disk full")
		err := pkgerrors.WrapGeneration("lookup source", "/out/definitions.go", base)
		genErr, ok := err.(*pkgerrors.GenerationError)
		require.True(t, ok)
		assert.Equal(t, "lookup source", genErr.Target)
		assert.Equal(t, "/out/definitions.go", genErr.Path)
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapGeneration("docs", "/out/docs", nil))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "sources",
			Message:   "path cannot be empty",
		}
		assert.Contains(t, err.Error(), "sources")
		assert.Contains(t, err.Error(), "path cannot be empty")
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewConfigError("output", "directory does not exist", nil)
		assert.Contains(t, err.Error(), "output")
		assert.Contains(t, err.Error(), "directory does not exist")
	})
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "read",
			Path:      "/tmp/test.yaml",
			Message:   "permission denied",
			Err:       errors.New("permission denied"),
		}
		assert.Contains(t, err.Error(), "read")
		assert.Contains(t, err.Error(), "/tmp/test.yaml")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/output.yaml", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		baseErr := errors.New("stale handle")
		err := pkgerrors.WrapIO("open", "/data/docs.yaml", baseErr)
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "open", ioErr.Operation)
		assert.Equal(t, "/data/docs.yaml", ioErr.Path)
	})
}

func TestParseError(t *testing.T) {
	t.Run("with location", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "yaml",
			File:    "headers.yaml",
			Line:    12,
			Column:  3,
			Message: "unexpected mapping key",
		}
		assert.Contains(t, err.Error(), "headers.yaml:12:3")
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("unexpected node")
		err := pkgerrors.WrapParse("yaml", "docs.yaml", base)
		parseErr, ok := err.(*pkgerrors.ParseError)
		require.True(t, ok)
		assert.Equal(t, "yaml", parseErr.Format)
		assert.Equal(t, base, parseErr.Unwrap())
	})
}

func TestResourceError(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		base := errors.New("duplicate key")
		err := pkgerrors.NewResourceError("add", "definition", "{00000000-0000-0000-0000-000000000000}/1", base)
		assert.Contains(t, err.Error(), "add")
		assert.Contains(t, err.Error(), "definition")
		assert.Equal(t, base, err.Unwrap())
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapResource("save", "knowledge base", "", nil))
	})
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", pkgerrors.ErrNotFound, pkgerrors.IsNotFound},
		{"already exists", pkgerrors.ErrAlreadyExists, pkgerrors.IsAlreadyExists},
		{"invalid input", pkgerrors.ErrInvalidInput, pkgerrors.IsValidationError},
		{"malformed identifier", pkgerrors.ErrMalformedIdentifier, pkgerrors.IsMalformedIdentifier},
		{"source unavailable", pkgerrors.ErrSourceUnavailable, pkgerrors.IsSourceUnavailable},
		{"canceled", pkgerrors.ErrCanceled, pkgerrors.IsCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
		})
	}
}
