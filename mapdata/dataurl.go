package mapdata

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const pngDataURLPrefix = "data:image/png;base64,"

var ErrNotDataURL = errors.New("mapdata: not a base64 data URL")

// EncodeDataURL wraps raw PNG bytes into a data URL.
func EncodeDataURL(pngBytes []byte) string {
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(pngBytes)
}

// EncodeImage encodes img as PNG and returns it as a data URL.
func EncodeImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("mapdata: encode png: %w", err)
	}
	return EncodeDataURL(buf.Bytes()), nil
}

// DecodeDataURL returns the bytes carried by a base64 data URL of any media type.
func DecodeDataURL(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, ErrNotDataURL
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 || !strings.HasSuffix(s[:comma], ";base64") {
		return nil, ErrNotDataURL
	}
	b, err := base64.StdEncoding.DecodeString(s[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("mapdata: decode data url: %w", err)
	}
	return b, nil
}

// DecodeImage decodes a PNG data URL.
func DecodeImage(s string) (image.Image, error) {
	b, err := DecodeDataURL(s)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("mapdata: decode png: %w", err)
	}
	return img, nil
}
