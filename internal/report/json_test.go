package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/can-i-eat-this/internal/model"
)

func TestJSONWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	_, err := w.Write(flaggedRecord())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	verdict, ok := parsed["verdict"].(map[string]any)
	require.True(t, ok, "envelope must carry a verdict object")

	// The verdict shape is a contract: exactly three booleans with
	// these names.
	require.Len(t, verdict, 3)
	assert.Equal(t, false, verdict["gluten_free"])
	assert.Equal(t, true, verdict["vegan"])
	assert.Equal(t, true, verdict["vegetarian"])

	assert.Equal(t, "/photos/crackers.jpg", parsed["image"])
	assert.NotContains(t, parsed, "error")
	assert.NotContains(t, parsed, "text", "full text is opt-in")

	ocrInfo, ok := parsed["ocr"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tesseract", ocrInfo["engine"])
	assert.Equal(t, float64(412), ocrInfo["duration_ms"])
	assert.Equal(t, float64(6), ocrInfo["words"])
}

func TestJSONWriter_WriteFailedRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	_, err := w.Write(failedRecord())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	// A failed scan has no verdict at all, not an all-false one.
	assert.NotContains(t, parsed, "verdict")
	assert.Contains(t, parsed["error"], "engine unavailable")
}

func TestJSONWriter_CompactByDefault(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	n, err := w.Write(clearRecord())
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestJSONWriter_WithPrettyPrint(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WithPrettyPrint())

	_, err := w.Write(clearRecord())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Greater(t, len(lines), 3)
	assert.Contains(t, buf.String(), "  \"verdict\"")
}

func TestJSONWriter_WithIndent(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WithIndent(">>", "\t"))

	_, err := w.Write(clearRecord())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), ">>")
	assert.Contains(t, buf.String(), "\t")
}

func TestJSONWriter_WithFullText(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WithFullText())

	_, err := w.Write(flaggedRecord())
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, "Ingredients: wheat flour, sugar, salt", parsed["text"])
}

func TestJSONWriter_WriteBatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	records := []*model.ScanRecord{flaggedRecord(), clearRecord(), failedRecord()}
	_, err := w.WriteBatch(records)
	require.NoError(t, err)

	var batch BatchEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &batch))

	assert.Equal(t, 3, batch.Count)
	assert.Equal(t, 1, batch.AllClear)
	assert.Equal(t, 1, batch.Flagged)
	assert.Equal(t, 1, batch.Failed)
	require.Len(t, batch.Results, 3)

	assert.NotNil(t, batch.Results[0].Verdict)
	assert.False(t, batch.Results[0].Verdict.GlutenFree)
	assert.Nil(t, batch.Results[2].Verdict)
	assert.NotEmpty(t, batch.Results[2].Error)
}

func TestNewEnvelope_OmitsOCRWhenUnset(t *testing.T) {
	record := &model.ScanRecord{
		ScannedAt: clearRecord().ScannedAt,
		Text:      "rice",
		Verdict:   model.NewVerdict(),
	}

	env := NewEnvelope(record, false)
	assert.Nil(t, env.OCR)
	assert.Empty(t, env.Image)
}
