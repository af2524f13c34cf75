package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const dataURLPrefix = "data:"

// ErrNotDataURL is returned for references that are not data URLs.
var ErrNotDataURL = errors.New("not a data url")

// DetectMIME sniffs the image type from magic bytes, falling back to
// content sniffing for anything else.
func DetectMIME(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case len(data) >= 4 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return "image/png"
	case len(data) >= 6 && (string(data[0:6]) == "GIF87a" || string(data[0:6]) == "GIF89a"):
		return "image/gif"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	}
	return http.DetectContentType(data)
}

// EncodeDataURL embeds data in a base64 data URL. The bytes are not
// validated or resized.
func EncodeDataURL(data []byte) string {
	mime := DetectMIME(data)
	if semi := strings.IndexByte(mime, ';'); semi >= 0 {
		mime = mime[:semi]
	}
	return dataURLPrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURL reports whether ref holds inline image data.
func IsDataURL(ref string) bool {
	return strings.HasPrefix(ref, dataURLPrefix)
}

// DecodeDataURL returns the MIME type and payload of a base64 data URL.
func DecodeDataURL(ref string) (string, []byte, error) {
	if !IsDataURL(ref) {
		return "", nil, ErrNotDataURL
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, dataURLPrefix), ",")
	if !ok {
		return "", nil, fmt.Errorf("data url: missing payload separator")
	}
	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data url: only base64 payloads are supported")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("data url: %w", err)
	}
	return mime, data, nil
}
