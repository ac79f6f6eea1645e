// Package media describes the kinds of content the blob store accepts
// and detects content types from raw bytes.
package media

import (
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectReader sniffs the content type from the head of r. It consumes
// the bytes it reads.
func DetectReader(r io.Reader) (*mimetype.MIME, error) {
	return mimetype.DetectReader(r)
}

func IsAllowedContentType(contentType string, allowedContentType []string) bool {
	for _, ct := range allowedContentType {
		if ct == contentType {
			return true
		}
	}
	return false
}

// baseContentType drops parameters such as charset and lower-cases the
// media type.
func baseContentType(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

type MediaTypeInfo interface {
	// MediaType returns the type of media for this info
	MediaType() MediaType

	// IsContentTypeAllowed returns true if the provided content type string is allowed for the media type
	IsContentTypeAllowed(contentType string) bool
}

var mediaTypeRegistry = map[MediaType]MediaTypeInfo{
	MediaType_IMAGE: &imageMediaTypeInfo{
		mediaType: MediaType_IMAGE,
	},
}

func GetMediaTypeInfo(mediaType MediaType) MediaTypeInfo {
	return mediaTypeRegistry[mediaType]
}
