package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// WriteFileVerified writes data atomically and then reads the file back,
// checking size and SHA256 against the source bytes. Removes the file on
// mismatch.
func WriteFileVerified(path string, data []byte, mode os.FileMode) error {
	if err := WriteFileAtomic(path, data, mode); err != nil {
		return err
	}

	written, err := os.ReadFile(path)
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("read back %s: %w", path, err)
	}
	if len(written) != len(data) {
		_ = os.Remove(path)
		return fmt.Errorf("write size mismatch: wrote %d bytes, read %d bytes", len(data), len(written))
	}

	want := sha256.Sum256(data)
	got := sha256.Sum256(written)
	if !bytes.Equal(want[:], got[:]) {
		_ = os.Remove(path)
		return fmt.Errorf("write hash mismatch: file corrupted during write")
	}
	return nil
}
