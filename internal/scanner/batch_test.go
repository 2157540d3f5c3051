package scanner

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/can-i-eat-this/internal/model"
	"github.com/Veraticus/can-i-eat-this/internal/testutil"
)

func TestScanner_ScanBatch(t *testing.T) {
	dir := t.TempDir()
	wheat := testutil.WriteFile(t, dir, "wheat.png", testutil.SplitPNG(t, 120, 80))
	clean := testutil.WriteFile(t, dir, "clean.png", testutil.SplitPNG(t, 120, 80))
	missing := filepath.Join(dir, "missing.png")

	engine := &testutil.StubEngine{
		TextByID: map[string]string{
			wheat: "wheat flour, sugar",
			clean: "rice, water",
		},
	}
	s := newTestScanner(engine)

	var mu sync.Mutex
	var seen []int
	records, err := s.ScanBatch(context.Background(), []string{wheat, missing, clean}, BatchOptions{
		Concurrency: 2,
		OnResult: func(_ *model.ScanRecord, index int) {
			mu.Lock()
			seen = append(seen, index)
			mu.Unlock()
		},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, wheat, records[0].ImagePath)
	assert.False(t, records[0].Failed())
	assert.False(t, records[0].Verdict.GlutenFree)

	assert.Equal(t, missing, records[1].ImagePath)
	assert.True(t, records[1].Failed())
	assert.Contains(t, records[1].Err, "no image")

	assert.Equal(t, clean, records[2].ImagePath)
	assert.True(t, records[2].Verdict.AllClear())

	assert.ElementsMatch(t, []int{0, 1, 2}, seen)
}

func TestScanner_ScanBatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(&testutil.StubEngine{})
	_, err := s.ScanBatch(ctx, []string{"a.png", "b.png"}, BatchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanner_ScanBatchEmpty(t *testing.T) {
	s := newTestScanner(&testutil.StubEngine{})

	records, err := s.ScanBatch(context.Background(), nil, BatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScanner_ScanBatchDefaultConcurrency(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png", "e.png", "f.png"} {
		paths = append(paths, testutil.WriteFile(t, dir, name, testutil.SplitPNG(t, 60, 40)))
	}

	s := newTestScanner(&testutil.StubEngine{Text: "rice"})
	records, err := s.ScanBatch(context.Background(), paths, BatchOptions{})
	require.NoError(t, err)
	require.Len(t, records, len(paths))

	for i, record := range records {
		assert.Equal(t, paths[i], record.ImagePath, "record %d out of order", i)
		assert.True(t, record.Verdict.AllClear())
	}
}
