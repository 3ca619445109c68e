package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// HashFile streams the file through SHA-256 and returns the hex digest.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
