package models

// Action names the operation a request bundle asks for.
type Action string

const (
	ActionResize  Action = "resizeImage"
	ActionMeasure Action = "imageSize"
	ActionStore   Action = "storeImage"
)

func (a Action) Valid() bool {
	switch a {
	case ActionResize, ActionMeasure, ActionStore:
		return true
	}
	return false
}

// PayloadKind says how the data field of a bundle is to be read.
type PayloadKind string

const (
	KindEmbeddedEncoded PayloadKind = "base64Image"
	KindFileReference   PayloadKind = "urlImage"
)

func (k PayloadKind) Valid() bool {
	return k == KindEmbeddedEncoded || k == KindFileReference
}

type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
)

func (f Format) Valid() bool {
	return f == FormatJPEG || f == FormatPNG
}

// ContentType is the MIME type of the encoded image.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// ResizeMode decides how target width and height are interpreted.
type ResizeMode string

const (
	ModeScaleFactor ResizeMode = "factorResize"
	ModeMinPixel    ResizeMode = "minPixelResize"
	ModeMaxPixel    ResizeMode = "maxPixelResize"
)

func (m ResizeMode) Valid() bool {
	switch m {
	case ModeScaleFactor, ModeMinPixel, ModeMaxPixel:
		return true
	}
	return false
}
