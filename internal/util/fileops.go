// UMBRA ⸻ internal/util/fileops.go
// file operation utilities

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// copies a file with integrity verification
func SafeCopy(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// destination file
	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	// copy contents
	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	// sync to ensure writes are flushed
	if err = dstFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync destination file: %w", err)
	}

	// verify integrity
	if err = verifyFileIntegrity(src, dst); err != nil {
		return err
	}

	return nil
}

// moves src over dst, replacing any existing file; the rename is the commit
// point, with a copy and remove fallback when the paths sit on different
// filesystems
func ReplaceFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if errors.Is(err, syscall.EXDEV) {
		if copyErr := SafeCopy(src, dst); copyErr != nil {
			return fmt.Errorf("cross-device replace failed: %w", copyErr)
		}
		return os.Remove(src)
	}

	return fmt.Errorf("rename failed: %w", err)
}

func ValidatePath(path string) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, expected a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file is not readable: %w", err)
	}
	file.Close()

	return nil
}

// deletes a file safely
func RemoveFile(path string) error {
	return os.Remove(path)
}

// checks if two files have the same content using SHA-256
func verifyFileIntegrity(file1, file2 string) error {
	hash1, err := calculateSHA256(file1)
	if err != nil {
		return err
	}

	hash2, err := calculateSHA256(file2)
	if err != nil {
		return err
	}

	if hash1 != hash2 {
		return fmt.Errorf("integrity verification failed: file checksums don't match")
	}

	return nil
}

// computes the SHA-256 hash of a file
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate file hash: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
