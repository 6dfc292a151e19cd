// Package avatar validates uploaded profile images and normalises them to
// a fixed-size PNG before they are stored on the user document.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	_ "image/jpeg"
	"image/png"
)

const (
	// MaxUploadBytes mirrors the upload limit enforced at the HTTP layer.
	MaxUploadBytes = 1_000_000

	// Side is the edge length of the stored square avatar.
	Side = 250
)

var ErrInvalidImage = errors.New("avatar: please upload a jpg, jpeg or png image")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Process checks the upload and returns the 250x250 PNG that gets stored.
func Process(filename string, data []byte) ([]byte, error) {
	if len(data) == 0 || len(data) > MaxUploadBytes {
		return nil, ErrInvalidImage
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil, ErrInvalidImage
	}

	if mime := http.DetectContentType(data); !strings.HasPrefix(mime, "image/") {
		return nil, ErrInvalidImage
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImage
	}

	resized := image.NewRGBA(image.Rect(0, 0, Side, Side))
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), decoded, decoded.Bounds(), xdraw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, resized); err != nil {
		return nil, fmt.Errorf("avatar: encode png: %w", err)
	}
	return out.Bytes(), nil
}
