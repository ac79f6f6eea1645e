package media

type MediaType int32

const (
	// The Default value
	MediaType_MEDIA_TYPE_UNSPECIFIED MediaType = 0
	// MediaType_MEDIA_TYPE_UNKNOWN Type is unknown. This is usually used when a process was unable to determine the type.
	MediaType_MEDIA_TYPE_UNKNOWN MediaType = 1
	MediaType_IMAGE              MediaType = 5
)

var MediaType_name = map[int32]string{
	0: "MEDIA_TYPE_UNSPECIFIED",
	1: "MEDIA_TYPE_UNKNOWN",
	5: "IMAGE",
}

func (x MediaType) String() string {
	return MediaType_name[int32(x)]
}
