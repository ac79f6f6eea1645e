package store

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/timemore/blobstore/errors"
	"github.com/timemore/blobstore/errors/data"
)

const objectURLFormat = "https://objectstorage.%s.oraclecloud.com/n/%s/b/%s/o/%s"

const objectNameDelimiter = "/o/"

// ObjectURL returns the public URL of objectName in the configured
// bucket.
func (mediaStore *Store) ObjectURL(objectName string) string {
	return fmt.Sprintf(objectURLFormat,
		mediaStore.config.Region,
		mediaStore.config.Namespace,
		mediaStore.config.BucketName,
		encodeObjectName(objectName))
}

// ObjectName extracts the object name from a URL built by ObjectURL.
func (mediaStore *Store) ObjectName(objectURL string) (string, error) {
	return ObjectNameFromURL(objectURL)
}

// ObjectNameFromURL returns the decoded segment following the only
// "/o/" of objectURL. A URL with zero or several delimiters is an
// argument error.
func ObjectNameFromURL(objectURL string) (string, error) {
	sections := strings.Split(objectURL, objectNameDelimiter)
	if len(sections) != 2 {
		return "", errors.ArgMsg("objectURL", "invalid URL format, unable to extract object name")
	}

	objectName, err := url.QueryUnescape(sections[1])
	if err != nil {
		return "", errors.Wrap("decoding object name from the URL", data.Malformed(err))
	}
	if objectName == "" {
		return "", errors.ArgMsg("objectURL", "object name is empty")
	}

	return objectName, nil
}

const upperhex = "0123456789ABCDEF"

// encodeObjectName applies HTML form encoding: letters, digits and
// ".-*_" are kept, space becomes "+", every other byte is %XX.
func encodeObjectName(objectName string) string {
	var sb strings.Builder
	sb.Grow(len(objectName))
	for i := 0; i < len(objectName); i++ {
		c := objectName[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			sb.WriteByte(c)
		case c == '.', c == '-', c == '*', c == '_':
			sb.WriteByte(c)
		case c == ' ':
			sb.WriteByte('+')
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&15])
		}
	}
	return sb.String()
}
