// Package pages holds the naming and selection conventions for rasterized
// page images shared by every pipeline stage.
package pages

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var fileRe = regexp.MustCompile(`^page_(\d+)\.png$`)

// FileName returns the image file name for a 1-based page number.
func FileName(page int) string {
	return fmt.Sprintf("page_%03d.png", page)
}

// Number extracts the page number from an image file name.
func Number(name string) (int, error) {
	m := fileRe.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0, fmt.Errorf("not a page image name: %s", name)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("bad page number in %s: %w", name, err)
	}
	return n, nil
}

// List returns the sorted page numbers of all page images found in dir.
func List(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages directory: %w", err)
	}

	var nums []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, err := Number(e.Name())
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums, nil
}

// ParseList parses a comma-separated page list like "1,2,5,10".
func ParseList(s string) ([]int, error) {
	var nums []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page number %q: %w", part, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("page numbers are 1-based, got %d", n)
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("empty page list")
	}
	return nums, nil
}

// Stride keeps every nth page starting from the first one.
func Stride(nums []int, n int) []int {
	if n <= 1 {
		return nums
	}
	var out []int
	for i := 0; i < len(nums); i += n {
		out = append(out, nums[i])
	}
	return out
}

// Select resolves the page subset for a run: an explicit list wins, then a
// sample stride over everything found in dir, then all pages in dir.
func Select(dir, list string, sample int) ([]int, error) {
	if list != "" {
		return ParseList(list)
	}
	nums, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("no page images in %s, run extract first", dir)
	}
	if sample > 1 {
		nums = Stride(nums, sample)
	}
	return nums, nil
}
