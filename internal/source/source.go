// Package source provides the image acquisition collaborators: local
// files, gallery directories, and an external camera command. Every
// source yields the same model.Image, so the scan pipeline does not
// care which path produced the photo.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/config"
	"github.com/Veraticus/can-i-eat-this/internal/model"
)

// Source acquires one image per call.
type Source interface {
	// Name identifies the acquisition path in logs and errors.
	Name() string
	// Acquire produces the image to scan.
	Acquire(ctx context.Context) (model.Image, error)
}

// FileSource reads an existing image file.
type FileSource struct {
	path string
}

var _ Source = (*FileSource)(nil)

// NewFile returns a source for a single image file. The path may use
// ~ and environment variables.
func NewFile(path string) *FileSource {
	return &FileSource{path: config.ExpandPath(path)}
}

// Name identifies the acquisition path.
func (s *FileSource) Name() string { return "file" }

// Acquire reads the file from disk.
func (s *FileSource) Acquire(ctx context.Context) (model.Image, error) {
	if err := ctx.Err(); err != nil {
		return model.Image{}, err
	}
	return readImageFile(s.path)
}

// GallerySource reads one named image out of a gallery directory. The
// interactive picking UI lives in the tui package; this source is the
// non-interactive half it hands its choice to.
type GallerySource struct {
	dir  string
	name string
}

var _ Source = (*GallerySource)(nil)

// NewGallery returns a source for the named image inside dir.
func NewGallery(dir, name string) *GallerySource {
	return &GallerySource{dir: config.ExpandPath(dir), name: name}
}

// Name identifies the acquisition path.
func (s *GallerySource) Name() string { return "gallery" }

// Acquire reads the chosen image out of the gallery directory.
func (s *GallerySource) Acquire(ctx context.Context) (model.Image, error) {
	if err := ctx.Err(); err != nil {
		return model.Image{}, err
	}
	return readImageFile(filepath.Join(s.dir, s.name))
}

// readImageFile loads image bytes from disk with the error taxonomy
// every source shares.
func readImageFile(path string) (model.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Image{}, fmt.Errorf("%w: %s", common.ErrNoImage, path)
		}
		return model.Image{}, fmt.Errorf("failed to stat image %s: %w", path, err)
	}
	if info.IsDir() {
		return model.Image{}, fmt.Errorf("%w: %s is a directory", common.ErrNoImage, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Image{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	if len(data) == 0 {
		return model.Image{}, fmt.Errorf("%w: %s is empty", common.ErrNoImage, path)
	}
	return model.Image{Path: path, Data: data}, nil
}

// imageExtensions are the file suffixes treated as images when listing
// a gallery. Decoding still sniffs the real format; the extension only
// filters directory listings and the picker.
var imageExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp",
}

// ImageExtensions returns the file suffixes recognized as images.
func ImageExtensions() []string {
	return append([]string(nil), imageExtensions...)
}

// IsImagePath reports whether path carries a recognized image
// extension.
func IsImagePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListImages returns the image files directly inside dir, sorted by
// name.
func ListImages(dir string) ([]string, error) {
	dir = config.ExpandPath(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery directory %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImagePath(entry.Name()) {
			continue
		}
		images = append(images, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(images)
	return images, nil
}
