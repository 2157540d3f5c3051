package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/can-i-eat-this/internal/model"
)

func TestMarkdownWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	_, err := w.Write(flaggedRecord())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# Food Label Scan Report")
	assert.Contains(t, out, "## crackers.jpg")
	assert.Contains(t, out, "| Property | Value |")
	assert.Contains(t, out, "`/photos/crackers.jpg`")
	assert.Contains(t, out, "2025-03-14")
	assert.Contains(t, out, "| Category | Verdict | Matched |")
	assert.Contains(t, out, "`wheat`")
	assert.Contains(t, out, "[!WARNING]")
	assert.Contains(t, out, "Flagged: Gluten-free.")
	assert.Contains(t, out, "https://github.com/Veraticus/can-i-eat-this")
}

func TestMarkdownWriter_WriteAllClear(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	_, err := w.Write(clearRecord())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[!TIP]")
	assert.Contains(t, out, "No disqualifying ingredients found")
	assert.NotContains(t, out, "[!WARNING]")
}

func TestMarkdownWriter_WriteFailedRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	_, err := w.Write(failedRecord())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[!CAUTION]")
	assert.Contains(t, out, "engine unavailable")
	assert.NotContains(t, out, "| Category | Verdict | Matched |")
}

func TestMarkdownWriter_WriteBatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	records := []*model.ScanRecord{flaggedRecord(), clearRecord(), failedRecord()}
	n, err := w.WriteBatch(records)
	require.NoError(t, err)

	assert.Equal(t, buf.Len(), n)

	out := buf.String()
	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "| Images | All clear | Flagged | Failed |")
	assert.Contains(t, out, "| 3 | 1 | 1 | 1 |")
	assert.Contains(t, out, "| Image | Gluten-free | Vegan | Vegetarian | Status |")
	assert.Contains(t, out, "❌ failed")
	assert.Contains(t, out, "## crackers.jpg")
	assert.Contains(t, out, "## rice.jpg")
	assert.Contains(t, out, "## blurry.jpg")
	assert.Contains(t, out, "[!CAUTION]")
}

func TestMarkdownWriter_WriteBatchAllClear(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	_, err := w.WriteBatch([]*model.ScanRecord{clearRecord()})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Every label came back clear.")
}

func TestMarkdownWriter_EvidenceBullets(t *testing.T) {
	var buf bytes.Buffer
	w := NewMarkdownWriter(&buf)

	record := &model.ScanRecord{
		ImagePath: "/photos/soup.jpg",
		ScannedAt: clearRecord().ScannedAt,
		Text:      "chicken broth, salt",
		Verdict:   model.Verdict{GlutenFree: true, Vegan: false, Vegetarian: false},
		Evidence: []model.Evidence{
			{Category: model.CategoryVegan, Keyword: "chicken", Excerpt: "chicken broth"},
			{Category: model.CategoryVegetarian, Keyword: "chicken", Excerpt: "chicken broth"},
		},
	}

	_, err := w.Write(record)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "**Vegan** matched `chicken`")
	assert.Contains(t, out, "**Vegetarian** matched `chicken`")
	assert.Contains(t, out, "Flagged: Vegan, Vegetarian.")
}
