package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novalang/novalang/internal/errors"
)

func TestNewFillsPhaseFromRegistry(t *testing.T) {
	r := errors.New(errors.MIR001, "unresolved symbol 'foo'", nil)
	assert.Equal(t, "lower", r.Phase)
	assert.Equal(t, errors.MIR001, r.Code)
}

func TestWrapAndAsReportRoundTrip(t *testing.T) {
	r := errors.New(errors.MIR002, "ambiguous delegation", nil)
	err := errors.WrapReport(r)
	require.Error(t, err)

	got, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, "MIR002: ambiguous delegation", err.Error())
}

func TestAsReportFalseForPlainError(t *testing.T) {
	_, ok := errors.AsReport(assert.AnError)
	assert.False(t, ok)
}

func TestJSONEncodeRoundTrip(t *testing.T) {
	r := errors.New(errors.HIR001, "unresolved identifier 'bar'", nil)
	data, err := errors.JSONEncode(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"code":"HIR001"`)
	assert.Contains(t, string(data), `"novalang.error/v1"`)
}

func TestLookupKnownAndUnknownCode(t *testing.T) {
	info, ok := errors.Lookup(errors.DSC001)
	require.True(t, ok)
	assert.Equal(t, "descriptor", info.Phase)

	_, ok = errors.Lookup("NOPE000")
	assert.False(t, ok)
}
