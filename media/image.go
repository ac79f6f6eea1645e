package media

var imageAllowedContentTypes = []string{
	"image/jpg",
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

type imageMediaTypeInfo struct {
	mediaType MediaType
}

func (typeInfo *imageMediaTypeInfo) MediaType() MediaType {
	if typeInfo.mediaType == MediaType_MEDIA_TYPE_UNSPECIFIED {
		return MediaType_IMAGE
	}
	return typeInfo.mediaType
}

func (typeInfo *imageMediaTypeInfo) IsContentTypeAllowed(contentType string) bool {
	return IsAllowedContentType(baseContentType(contentType), imageAllowedContentTypes)
}
