package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Minimal GIF87a payload; enough for MIME sniffing to see image/gif.
var gifBytes = []byte("GIF87a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"animation.GIF", true},
		{"malware.exe", false},
		{"archive.tar.gz", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := AllowedExtension(tt.filename); got != tt.want {
			t.Errorf("AllowedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestSaveProfilePictureRejectsDisallowedExtension(t *testing.T) {
	t.Setenv("PORTFOLIO_UPLOADS_PATH", t.TempDir())

	_, err := SaveProfilePicture(1, bytes.NewReader(gifBytes), "malware.exe")
	if err != ErrUploadRejected {
		t.Fatalf("expected ErrUploadRejected, got %v", err)
	}
}

func TestSaveProfilePictureRejectsNonImageContent(t *testing.T) {
	t.Setenv("PORTFOLIO_UPLOADS_PATH", t.TempDir())

	_, err := SaveProfilePicture(1, strings.NewReader("plain text pretending to be an image"), "photo.png")
	if err != ErrUploadRejected {
		t.Fatalf("expected ErrUploadRejected for non-image content, got %v", err)
	}
}

func TestSaveProfilePictureStoresContentAddressedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORTFOLIO_UPLOADS_PATH", dir)

	filename, err := SaveProfilePicture(7, bytes.NewReader(gifBytes), "avatar.gif")
	if err != nil {
		t.Fatalf("SaveProfilePicture: %v", err)
	}
	if !strings.HasPrefix(filename, "profile_7_") {
		t.Fatalf("expected profile_7_ prefix, got %s", filename)
	}
	if !strings.HasSuffix(filename, ".gif") {
		t.Fatalf("expected .gif suffix, got %s", filename)
	}

	stored, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if !bytes.Equal(stored, gifBytes) {
		t.Fatalf("stored bytes differ from upload")
	}

	// Re-uploading the same bytes must land on the same name.
	again, err := SaveProfilePicture(7, bytes.NewReader(gifBytes), "renamed.gif")
	if err != nil {
		t.Fatalf("second SaveProfilePicture: %v", err)
	}
	if again != filename {
		t.Fatalf("expected deduplicated filename %s, got %s", filename, again)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one stored file, found %d", len(entries))
	}
}

func TestSaveProjectImageRejectsOversizeFile(t *testing.T) {
	t.Setenv("PORTFOLIO_UPLOADS_PATH", t.TempDir())
	t.Setenv("PORTFOLIO_MAX_UPLOAD_SIZE_BYTES", "10")

	_, err := SaveProjectImage(bytes.NewReader(gifBytes), "bridge.gif")
	if err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestSaveProjectImageUsesProjectPrefix(t *testing.T) {
	t.Setenv("PORTFOLIO_UPLOADS_PATH", t.TempDir())

	filename, err := SaveProjectImage(bytes.NewReader(gifBytes), "bridge.gif")
	if err != nil {
		t.Fatalf("SaveProjectImage: %v", err)
	}
	if !strings.HasPrefix(filename, "project_") {
		t.Fatalf("expected project_ prefix, got %s", filename)
	}
}

func TestProfileAndProjectNamesNeverCollide(t *testing.T) {
	t.Setenv("PORTFOLIO_UPLOADS_PATH", t.TempDir())

	profileName, err := SaveProfilePicture(1, bytes.NewReader(gifBytes), "same.gif")
	if err != nil {
		t.Fatalf("SaveProfilePicture: %v", err)
	}
	projectName, err := SaveProjectImage(bytes.NewReader(gifBytes), "same.gif")
	if err != nil {
		t.Fatalf("SaveProjectImage: %v", err)
	}
	if profileName == projectName {
		t.Fatalf("profile and project uploads of identical bytes must not share a name")
	}
}

func TestRemoveStoredFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORTFOLIO_UPLOADS_PATH", dir)

	filename, err := SaveProjectImage(bytes.NewReader(gifBytes), "bridge.gif")
	if err != nil {
		t.Fatalf("SaveProjectImage: %v", err)
	}

	if err := RemoveStoredFile(filename); err != nil {
		t.Fatalf("RemoveStoredFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filename)); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed")
	}

	// Removing twice is fine.
	if err := RemoveStoredFile(filename); err != nil {
		t.Fatalf("RemoveStoredFile on missing file: %v", err)
	}

	if err := RemoveStoredFile("../escape.gif"); err == nil {
		t.Fatalf("expected error for path escaping the uploads root")
	}
}
