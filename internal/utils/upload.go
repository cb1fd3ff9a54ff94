package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// MaxPhotoBytes caps profile photo uploads at 5 MB.
const MaxPhotoBytes = 5 << 20

// ErrPhotoTooLarge and ErrPhotoType are returned by SavePhoto for uploads
// that fail the size or extension policy.
var (
	ErrPhotoTooLarge = errors.New("photo exceeds maximum size")
	ErrPhotoType     = errors.New("unsupported photo type")
)

var photoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// SavePhoto writes an uploaded profile photo into dir under a random
// filename and returns the public /uploads path to store on the record.
// The original filename only contributes its extension.
func SavePhoto(fh *multipart.FileHeader, dir string) (string, error) {
	if fh.Size > MaxPhotoBytes {
		return "", ErrPhotoTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !photoExts[ext] {
		return "", ErrPhotoType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name, err := randomHex(16)
	if err != nil {
		return "", err
	}
	name += ext

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// LimitReader guards against a forged Content-Length in the part header.
	if _, err := io.Copy(dst, io.LimitReader(src, MaxPhotoBytes+1)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
