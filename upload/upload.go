// Package upload validates and stores the images attached to products and
// portfolio entries.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Traorelacina/Glory-event/validation"
	"github.com/gabriel-vasile/mimetype"
)

// URLPrefix is where main serves Storage.Dir.
const URLPrefix = "/uploads"

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type Storage struct {
	Dir      string
	MaxBytes int64
}

func New(dir string, maxBytes int64) *Storage {
	return &Storage{Dir: dir, MaxBytes: maxBytes}
}

// Check records a violation under field when fh is too large or is not an
// accepted image type. The type is sniffed from content, not the file name.
func (s *Storage) Check(field string, fh *multipart.FileHeader, v validation.Violations) {
	if fh.Size > s.MaxBytes {
		v.Add(field, fmt.Sprintf("must not exceed %dMB", s.MaxBytes>>20))
		return
	}
	f, err := fh.Open()
	if err != nil {
		v.Add(field, "could not be read")
		return
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil || !isAllowed(mtype) {
		v.Add(field, "must be a jpeg, png, gif or webp image")
	}
}

func isAllowed(mtype *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

// Save copies fh into Dir/subdir and returns the public path to it,
// e.g. "/uploads/produits/1718000000000_robe-rouge.png".
func (s *Storage) Save(fh *multipart.FileHeader, subdir string) (string, error) {
	saveDir := filepath.Join(s.Dir, subdir)
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	base := validation.Slugify(strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename)))
	if base == "" {
		base = "image"
	}
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(filepath.Join(saveDir, filename))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return "", err
	}
	return URLPrefix + "/" + subdir + "/" + filename, nil
}

// Remove deletes a file returned by Save. Paths outside the upload prefix
// (external URLs) and already-missing files are ignored.
func (s *Storage) Remove(publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, URLPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return nil
	}
	if err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
