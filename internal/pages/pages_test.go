package pages

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileNameNumberRoundTrip(t *testing.T) {
	tests := []struct {
		page int
		name string
	}{
		{1, "page_001.png"},
		{40, "page_040.png"},
		{78, "page_078.png"},
		{123, "page_123.png"},
	}

	for _, tt := range tests {
		if got := FileName(tt.page); got != tt.name {
			t.Errorf("FileName(%d) = %s, want %s", tt.page, got, tt.name)
		}
		n, err := Number(tt.name)
		if err != nil {
			t.Fatalf("Number(%s) failed: %v", tt.name, err)
		}
		if n != tt.page {
			t.Errorf("Number(%s) = %d, want %d", tt.name, n, tt.page)
		}
	}
}

func TestNumberRejectsOtherFiles(t *testing.T) {
	for _, name := range []string{"hashes.json", "page_abc.png", "page_001.jpg", "report.txt"} {
		if _, err := Number(name); err == nil {
			t.Errorf("Number(%s) should fail", name)
		}
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"1,2,5,10", []int{1, 2, 5, 10}, false},
		{" 3 , 7 ", []int{3, 7}, false},
		{"42", []int{42}, false},
		{"", nil, true},
		{"1,x", nil, true},
		{"0", nil, true},
		{"-2", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseList(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseList(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseList(%q) failed: %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStride(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got := Stride(nums, 3)
	want := []int{1, 4, 7, 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stride(3) = %v, want %v", got, want)
	}

	if got := Stride(nums, 1); !reflect.DeepEqual(got, nums) {
		t.Errorf("Stride(1) should keep all pages, got %v", got)
	}
}

func TestListAndSelect(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []int{3, 1, 2} {
		path := filepath.Join(dir, FileName(p))
		if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	// Unrelated files must be ignored.
	if err := os.WriteFile(filepath.Join(dir, "hashes.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	nums, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !reflect.DeepEqual(nums, []int{1, 2, 3}) {
		t.Errorf("List = %v, want [1 2 3]", nums)
	}

	sel, err := Select(dir, "2,3", 0)
	if err != nil {
		t.Fatalf("Select with list failed: %v", err)
	}
	if !reflect.DeepEqual(sel, []int{2, 3}) {
		t.Errorf("Select list = %v, want [2 3]", sel)
	}

	sel, err = Select(dir, "", 2)
	if err != nil {
		t.Fatalf("Select with sample failed: %v", err)
	}
	if !reflect.DeepEqual(sel, []int{1, 3}) {
		t.Errorf("Select sample = %v, want [1 3]", sel)
	}
}

func TestSelectEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := Select(dir, "", 0); err == nil {
		t.Error("Select on empty dir should fail")
	}
}
