package users

import (
	"bytes"
	"errors"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// Image upload hygiene shared by profile avatars and post images: extension
// allow-list, size cap, MIME sniff, and a decode/re-encode for formats the
// stdlib can handle so nothing but pixel data reaches object storage.

const maxImageBytes = 5 << 20 // 5MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".heif": true,
	".webp": true,
}

// readUploadedImage validates and reads the uploaded file, returning the bytes
// to store and the extension to name the object with.
func readUploadedImage(file multipart.File, handler *multipart.FileHeader) ([]byte, string, error) {
	ext := strings.ToLower(filepath.Ext(handler.Filename))
	if !allowedImageExts[ext] {
		return nil, "", errors.New("image must be JPG/PNG/HEIC/HEIF/WEBP")
	}
	if handler.Size > maxImageBytes {
		return nil, "", errors.New("image must be 5MB or smaller")
	}

	// sniff the real content type from the first 512 bytes
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return nil, "", errors.New("failed to read image")
	}
	detected := http.DetectContentType(head[:n])
	if !strings.HasPrefix(detected, "image/") {
		return nil, "", errors.New("file is not an image")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, "", errors.New("failed to read image")
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return nil, "", errors.New("failed to read image")
	}
	if len(raw) > maxImageBytes {
		return nil, "", errors.New("image must be 5MB or smaller")
	}

	// Re-encode jpeg/png to strip metadata and confirm the file decodes.
	// HEIC/HEIF/WEBP pass through as-is (stdlib cannot decode them).
	switch detected {
	case "image/jpeg":
		img, err := jpeg.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, "", errors.New("invalid JPEG image")
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", errors.New("failed to process image")
		}
		return buf.Bytes(), ".jpg", nil
	case "image/png":
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, "", errors.New("invalid PNG image")
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", errors.New("failed to process image")
		}
		return buf.Bytes(), ".png", nil
	}
	return raw, ext, nil
}
