package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// DecodeImagePayload accepts either a raw base64 string or a full
// "data:<mime>;base64,<payload>" URL and returns the mime type and raw bytes.
// Raw payloads without a data prefix are assumed to be JPEG.
func DecodeImagePayload(imageBase64 string) (string, []byte, error) {
	mimeType := "image/jpeg"
	payload := imageBase64
	if strings.HasPrefix(imageBase64, "data:") {
		parts := strings.SplitN(imageBase64, ",", 2)
		if len(parts) != 2 {
			return "", nil, fmt.Errorf("malformed data URL")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		if idx := strings.Index(meta, ";"); idx >= 0 {
			meta = meta[:idx]
		}
		if meta != "" {
			mimeType = meta
		}
		payload = parts[1]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 image: %v", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty image payload")
	}
	return mimeType, data, nil
}

func EncodeDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
