package handler

import (
	"net/http"
	"strconv"
	"time"
)

type blobResponse struct {
	contentType string
	data        []byte
	maxAge      time.Duration
}

func (b blobResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", b.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.data)))
	if b.maxAge > 0 {
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(b.maxAge.Seconds())))
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(b.data)
	return err
}

// Blob writes data with the given content type and status 200.
func Blob(contentType string, data []byte) Response {
	return blobResponse{contentType: contentType, data: data}
}

// CachedBlob is Blob with a public Cache-Control max-age.
func CachedBlob(contentType string, data []byte, maxAge time.Duration) Response {
	return blobResponse{contentType: contentType, data: data, maxAge: maxAge}
}
