package types

type ContainerFormat string

const (
	ContainerFormatMP4  ContainerFormat = "mp4"
	ContainerFormatWebM ContainerFormat = "webm"
	ContainerFormatAVI  ContainerFormat = "avi"
)
