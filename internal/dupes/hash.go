// Package dupes flags visually near-identical graph pages using perceptual
// hashes. The verdict is advisory only: thin plot lines on a dark background
// hash alike regardless of the underlying curve, so real confirmation comes
// from the vision analysis, not from here.
package dupes

import (
	"encoding/json"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/corona10/goimagehash"
	"github.com/winston-dve-knopki/analyzis-expertize/internal/pages"
)

// NearThreshold is the default Hamming distance below which two page
// hashes count as near duplicates.
const NearThreshold = 3

// PageHash is the persisted perceptual hash of one page image.
type PageHash struct {
	Page  int    `json:"page"`
	Path  string `json:"path"`
	PHash string `json:"phash"`
}

// HashFile is the on-disk shape of the hashes artifact.
type HashFile struct {
	Hashes []PageHash `json:"hashes"`
}

// HashPages computes a perceptual hash for every page image in dir,
// in page order.
func HashPages(dir string) ([]PageHash, error) {
	nums, err := pages.List(dir)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("no page images in %s, run extract first", dir)
	}

	hashes := make([]PageHash, 0, len(nums))
	for _, n := range nums {
		name := pages.FileName(n)
		h, err := hashFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to hash page %d: %w", n, err)
		}
		hashes = append(hashes, PageHash{Page: n, Path: name, PHash: h.ToString()})
	}

	slog.Info("Hashed pages", "dir", dir, "pages", len(hashes))
	return hashes, nil
}

func hashFile(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return goimagehash.PerceptionHash(img)
}

// SaveHashes writes the hashes artifact as indented JSON.
func SaveHashes(path string, hashes []PageHash) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create hashes file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(HashFile{Hashes: hashes}); err != nil {
		return fmt.Errorf("failed to encode hashes: %w", err)
	}
	return nil
}
