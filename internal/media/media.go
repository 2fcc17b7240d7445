// Package media validates and stores uploaded portfolio images under the
// configured uploads root. Stored names are content-addressed: the sha256 of
// the bytes keys the file, so re-uploads deduplicate and profile and project
// images can never collide on an original filename.
package media

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUploadRejected reports a disallowed upload. Callers treat it as a silent
// skip: no file is stored and the owning record's image reference stays unset.
var ErrUploadRejected = errors.New("upload rejected")

// ErrFileTooLarge reports a file over the configured size cap. Unlike
// ErrUploadRejected this is a hard failure: the request layer turns it into
// 413, it is never silently skipped.
var ErrFileTooLarge = errors.New("file exceeds size limit")

const (
	defaultUploadsBasePath       = "./uploads"
	defaultMaxUploadSize   int64 = 50 * 1024 * 1024 // 50 MB
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// AllowedExtension reports whether the filename carries an accepted image
// extension (case-insensitive).
func AllowedExtension(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// UploadsBasePath returns the configured storage root for uploaded images.
func UploadsBasePath() string {
	value := strings.TrimSpace(os.Getenv("PORTFOLIO_UPLOADS_PATH"))
	if value == "" {
		return defaultUploadsBasePath
	}
	return value
}

// MaxUploadSizeBytes returns the request payload cap, default 50 MB.
func MaxUploadSizeBytes() int64 {
	raw := strings.TrimSpace(os.Getenv("PORTFOLIO_MAX_UPLOAD_SIZE_BYTES"))
	if raw == "" {
		return defaultMaxUploadSize
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return defaultMaxUploadSize
	}

	return value
}

// SaveProfilePicture stores a profile picture for ownerID and returns the
// stored filename.
func SaveProfilePicture(ownerID int, file io.Reader, originalName string) (string, error) {
	return saveImage(fmt.Sprintf("profile_%d_", ownerID), file, originalName)
}

// SaveProjectImage stores a project image and returns the stored filename.
func SaveProjectImage(file io.Reader, originalName string) (string, error) {
	return saveImage("project_", file, originalName)
}

func saveImage(prefix string, file io.Reader, originalName string) (string, error) {
	if !AllowedExtension(originalName) {
		return "", ErrUploadRejected
	}

	buffer := make([]byte, 512)
	bytesRead, err := io.ReadFull(file, buffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	if bytesRead == 0 {
		return "", ErrUploadRejected
	}

	detected := mimetype.Detect(buffer[:bytesRead])
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", ErrUploadRejected
	}

	uploadDir := UploadsBasePath()
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	tempFile, err := os.CreateTemp(uploadDir, ".incoming-*")
	if err != nil {
		return "", err
	}

	tempPath := tempFile.Name()
	defer func() {
		if tempPath != "" {
			_ = os.Remove(tempPath)
		}
	}()

	hasher := sha256.New()
	writer := io.MultiWriter(tempFile, hasher)
	fileSize := int64(bytesRead)
	if _, err := writer.Write(buffer[:bytesRead]); err != nil {
		_ = tempFile.Close()
		return "", err
	}

	copied, err := io.Copy(writer, file)
	if err != nil {
		_ = tempFile.Close()
		return "", err
	}
	fileSize += copied

	if closeErr := tempFile.Close(); closeErr != nil {
		return "", closeErr
	}

	if fileSize > MaxUploadSizeBytes() {
		return "", ErrFileTooLarge
	}

	contentHash := hex.EncodeToString(hasher.Sum(nil))
	extension := strings.ToLower(filepath.Ext(originalName))
	filename := prefix + contentHash + extension
	filePath := filepath.Join(uploadDir, filename)

	// Same content already stored under the same name: keep the existing file.
	if _, statErr := os.Stat(filePath); statErr == nil {
		return filename, nil
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		return "", err
	}
	if err := os.Chmod(filePath, 0o644); err != nil {
		_ = os.Remove(filePath)
		return "", err
	}
	tempPath = ""

	return filename, nil
}

// RemoveStoredFile deletes a stored image from the uploads root. A missing
// file is not an error.
func RemoveStoredFile(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return nil
	}

	// Stored names are flat; refuse anything that would escape the root.
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid stored filename: %s", filename)
	}

	err := os.Remove(filepath.Join(UploadsBasePath(), filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
