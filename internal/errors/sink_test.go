package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/novalang/novalang/internal/errors"
	"github.com/novalang/novalang/internal/source"
)

func TestSinkAccumulates(t *testing.T) {
	var s errors.Sink
	assert.True(t, s.Empty())

	s.Warnf(errors.MIR001, "unresolved symbol 'x'")
	s.WarnAt(errors.MIR005, "fell back to $PipeCall", source.Pos{File: "a.nova", Line: 3})

	assert.False(t, s.Empty())
	assert.Len(t, s.Reports(), 2)
	assert.Equal(t, errors.MIR001, s.Reports()[0].Code)
	assert.Equal(t, 3, s.Reports()[1].Span.Start.Line)
}
