package errors

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForCLI(t *testing.T) {
	err := New(ErrCodeDatabaseNotFound, "quran.db missing", nil).
		WithSuggestion("check the data directory path")

	out := FormatForCLI(err)
	assert.Contains(t, out, "Error: quran.db missing")
	assert.Contains(t, out, "Hint: check the data directory path")
	assert.Contains(t, out, "Code: ERR_201_DATABASE_NOT_FOUND")
}

func TestFormatForCLI_PlainError(t *testing.T) {
	out := FormatForCLI(stderrors.New("plain failure"))
	assert.Contains(t, out, "plain failure")
	assert.Contains(t, out, ErrCodeInternal)
}

func TestFormatForCLI_Nil(t *testing.T) {
	assert.Empty(t, FormatForCLI(nil))
}

func TestFormatJSON(t *testing.T) {
	cause := stderrors.New("disk I/O error")
	err := Wrap(ErrCodeDatabaseCorrupt, cause).WithDetail("path", "/data/quran.db")

	raw, jerr := FormatJSON(err)
	require.NoError(t, jerr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "ERR_202_DATABASE_CORRUPT", decoded["code"])
	assert.Equal(t, "STORAGE", decoded["category"])
	assert.Equal(t, "FATAL", decoded["severity"])
	assert.Equal(t, "disk I/O error", decoded["cause"])
}

func TestFormatForLog(t *testing.T) {
	err := New(ErrCodeDatabaseLocked, "database is locked", nil).
		WithDetail("path", "/data/quran.db")

	attrs := FormatForLog(err)
	assert.Equal(t, "ERR_203_DATABASE_LOCKED", attrs["error_code"])
	assert.Equal(t, true, attrs["retryable"])
	assert.Equal(t, "/data/quran.db", attrs["detail_path"])

	plain := FormatForLog(stderrors.New("plain"))
	assert.Equal(t, "plain", plain["error"])

	assert.Nil(t, FormatForLog(nil))
}
