package contribution

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/disintegration/imaging"
)

var (
	ErrInvalidPhotoURL = errors.New("invalid photo URL")
	ErrNotAnImage      = errors.New("file is not a decodable image")
	ErrBothPhotoInputs = errors.New("provide either a photo URL or a file, not both")
	ErrNoPhotoInput    = errors.New("no photo provided")
)

// ValidatePhotoURL accepts only absolute http(s) URLs with a host.
func ValidatePhotoURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidPhotoURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidPhotoURL
	}
	return nil
}

// ValidateImage enforces the practical upload limit and verifies the bytes
// decode as an image before anything leaves the client. Returns the buffered
// content for forwarding. Also used for avatar uploads.
func ValidateImage(r io.Reader, maxBytes int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("image exceeds %d MB limit", maxBytes/(1024*1024))
	}
	if _, err := imaging.Decode(bytes.NewReader(raw)); err != nil {
		return nil, ErrNotAnImage
	}
	return raw, nil
}
