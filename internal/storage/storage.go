// Package storage writes uploaded files under a media root and hands
// back the relative paths that get recorded as storage references.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campusportal/lostfound/internal/constants"
)

// MediaStore stores uploads on disk under Root. Stored paths are
// relative to Root and recorded verbatim by callers, so the serving
// layer resolves them back to files with a plain filepath.Join.
type MediaStore struct {
	Root string
}

// NewMediaStore creates the media root if needed.
func NewMediaStore(root string) (*MediaStore, error) {
	if err := os.MkdirAll(filepath.Join(root, constants.ImageUploadDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &MediaStore{Root: root}, nil
}

// ImagePath derives the storage path for one uploaded item image:
// item_images/{username}_{YYYYMMDD_HHMMSS}{ext}. The timestamp is the
// moment this particular image record is created, so files in one
// submission can carry distinct timestamps. The extension comes from
// the uploaded filename unchanged.
func ImagePath(username string, now time.Time, originalName string) string {
	ext := filepath.Ext(originalName)
	name := fmt.Sprintf("%s_%s%s", username, now.Format("20060102_150405"), ext)
	return filepath.ToSlash(filepath.Join(constants.ImageUploadDir, name))
}

// Save writes data to relPath under the media root. Paths that resolve
// outside the root are rejected. When the derived path already exists
// (two uploads by the same user within a second), a numeric suffix is
// inserted before the extension and the adjusted path is returned.
func (s *MediaStore) Save(relPath string, data []byte) (string, error) {
	rel := relPath
	abs := filepath.Join(s.Root, filepath.FromSlash(rel))

	if !s.contains(abs) {
		return "", fmt.Errorf("path %q escapes the media root", relPath)
	}

	for n := 1; ; n++ {
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			break
		}
		ext := filepath.Ext(relPath)
		base := relPath[:len(relPath)-len(ext)]
		rel = fmt.Sprintf("%s_%d%s", base, n, ext)
		abs = filepath.Join(s.Root, filepath.FromSlash(rel))
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return rel, nil
}

// Resolve maps a stored path back to an absolute filename.
func (s *MediaStore) Resolve(relPath string) string {
	return filepath.Join(s.Root, filepath.FromSlash(relPath))
}

// contains reports whether abs names a file strictly under the media
// root. The root itself does not qualify.
func (s *MediaStore) contains(abs string) bool {
	rel, err := filepath.Rel(s.Root, abs)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
