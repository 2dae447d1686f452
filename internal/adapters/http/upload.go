package web

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxImageBytes caps an uploaded image; it is stored inline as a data URL.
const maxImageBytes = 4 << 20

var (
	errNoImage       = errors.New("an image file is required in the \"image\" field")
	errNotImage      = errors.New("uploaded file is not an image")
	errImageTooLarge = errors.New("image exceeds 4 MB")
)

// readImageDataURL reads the multipart "image" field and encodes it as a
// data:<mime>;base64 URL. The MIME type is sniffed, not trusted from the client.
func readImageDataURL(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+1<<20)
	file, _, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", errImageTooLarge
		}
		return "", fmt.Errorf("%w: %v", errNoImage, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errNoImage, err)
	}
	if len(data) > maxImageBytes {
		return "", errImageTooLarge
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", errNotImage
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func isUploadError(err error) bool {
	return errors.Is(err, errNoImage) || errors.Is(err, errNotImage) || errors.Is(err, errImageTooLarge)
}
