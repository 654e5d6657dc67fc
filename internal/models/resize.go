package models

// Bundle is the request object as it arrives from a caller. Optional fields are
// pointers so that absent and zero can be told apart when defaults are applied.
type Bundle struct {
	Data          string   `json:"data" validate:"required"`
	ImageDataType string   `json:"imageDataType,omitempty" validate:"omitempty,oneof=base64Image urlImage"`
	Format        string   `json:"format,omitempty" validate:"omitempty,oneof=jpg png"`
	ResizeType    string   `json:"resizeType,omitempty" validate:"omitempty,oneof=factorResize minPixelResize maxPixelResize"`
	Width         *float64 `json:"width,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	PixelDensity  bool     `json:"pixelDensity,omitempty"`
	DeviceDensity *float64 `json:"deviceDensity,omitempty" validate:"omitempty,gt=0"`
	Quality       *int     `json:"quality,omitempty" validate:"omitempty,min=0,max=100"`
	StoreImage    bool     `json:"storeImage,omitempty"`
	Filename      string   `json:"filename,omitempty"`
	Directory     string   `json:"directory,omitempty"`
}

// ImageRequest is the normalized, immutable form of a bundle.
type ImageRequest struct {
	Payload   string
	Kind      PayloadKind
	Format    Format
	Operation Action
}

// Destination is where a persisted image is written.
type Destination struct {
	Directory string
	Filename  string
}

type ResizeParams struct {
	Mode              ResizeMode
	TargetWidth       float64
	TargetHeight      float64
	CompensateDensity bool
	DeviceDensity     float64
	Quality           int
	Persist           bool
	Destination       *Destination
}

// ResizeResult carries the output dimensions and exactly one of ImageData or Filename.
type ResizeResult struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData,omitempty"`
	Filename  string `json:"filename,omitempty"`
}
