package handlers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeDeleteUploadRemovesFileInUploadsTree(t *testing.T) {
	publicDir := t.TempDir()
	dir := filepath.Join(publicDir, "uploads", "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "img.png")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := safeDeleteUpload(publicDir, "/public/uploads/products/img.png"); err != nil {
		t.Fatalf("safeDeleteUpload: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}

func TestSafeDeleteUploadMissingFileIsNotAnError(t *testing.T) {
	if err := safeDeleteUpload(t.TempDir(), "uploads/products/gone.png"); err != nil {
		t.Fatalf("expected success for missing file, got %v", err)
	}
}

func TestSafeDeleteUploadRefusesEscapes(t *testing.T) {
	publicDir := t.TempDir()

	for _, path := range []string{
		"../etc/passwd",
		"uploads/../../etc/passwd",
		"somewhere/else.png",
	} {
		if err := safeDeleteUpload(publicDir, path); err == nil {
			t.Fatalf("expected refusal for %q", path)
		}
	}
}

func TestParsePageSize(t *testing.T) {
	if size, err := parsePageSize(""); err != nil || size != defaultPageSize {
		t.Fatalf("empty input: got %d, %v", size, err)
	}
	if size, err := parsePageSize("5"); err != nil || size != 5 {
		t.Fatalf("valid input: got %d, %v", size, err)
	}
	if size, err := parsePageSize("9999"); err != nil || size != maxPageSize {
		t.Fatalf("oversize input should clamp: got %d, %v", size, err)
	}
	for _, raw := range []string{"0", "-1", "zero"} {
		if _, err := parsePageSize(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
