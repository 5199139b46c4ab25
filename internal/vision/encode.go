package vision

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// readAsDataURL reads an image file and returns it as a base64 data URL
// suitable for an OpenAI-style image_url content part.
func readAsDataURL(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		switch strings.TrimPrefix(ext, ".") {
		case "jpg", "jpeg":
			mt = "image/jpeg"
		case "png":
			mt = "image/png"
		default:
			mt = "application/octet-stream"
		}
	}

	data := base64.StdEncoding.EncodeToString(b)
	return "data:" + mt + ";base64," + data, nil
}

// readRaw reads an image file and returns its bytes plus the bare base64
// encoding used by the Ollama API.
func readRaw(path string) ([]byte, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	return b, base64.StdEncoding.EncodeToString(b), nil
}
