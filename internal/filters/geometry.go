// Geometric transforms: rotate, flip, resize
package filters

import (
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
)

// RotationFilter rotates an image by a given angle
type RotationFilter struct{}

// NewRotationFilter creates a new rotation filter
func NewRotationFilter() *RotationFilter {
	return &RotationFilter{}
}

func (r *RotationFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: rotate", ErrInvalidInput)
	}

	angle := intParam(params, "angle", 90)

	// Axis-aligned fast path for the three canonical angles
	rotationCodes := map[int]gocv.RotateFlag{
		90:  gocv.Rotate90Clockwise,
		180: gocv.Rotate180Clockwise,
		270: gocv.Rotate90CounterClockwise,
	}

	output := gocv.NewMat()
	if code, ok := rotationCodes[angle]; ok {
		gocv.Rotate(input, &output, code)
		return output, nil
	}

	// Arbitrary angle: affine warp about the center, output keeps the
	// input dimensions so content may be cropped or padded
	width := input.Cols()
	height := input.Rows()
	center := image.Pt(width/2, height/2)

	matrix := gocv.GetRotationMatrix2D(center, float64(angle), 1.0)
	defer matrix.Close()

	gocv.WarpAffine(input, &output, matrix, image.Pt(width, height))
	return output, nil
}

func (r *RotationFilter) GetName() string {
	return "Rotation"
}

func (r *RotationFilter) GetDescription() string {
	return "Rotates image by specified angle"
}

func (r *RotationFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"angle": 90,
	}
}

func (r *RotationFilter) Validate(params map[string]interface{}) error {
	angle := intParam(params, "angle", 90)
	if angle < -360 || angle > 360 {
		return fmt.Errorf("angle must be between -360 and 360")
	}
	return nil
}

func (r *RotationFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "angle",
			Type:        "int",
			Min:         -360,
			Max:         360,
			Default:     90,
			Description: "Rotation angle in degrees (90, 180, 270 are lossless)",
		},
	}
}

// FlipFilter mirrors an image across one or both axes
type FlipFilter struct{}

// NewFlipFilter creates a new flip filter
func NewFlipFilter() *FlipFilter {
	return &FlipFilter{}
}

func (f *FlipFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: flip", ErrInvalidInput)
	}

	direction := stringParam(params, "direction", "horizontal")

	// Unrecognized directions flip both axes, matching the documented
	// fallback rather than raising an error
	flipCode := -1
	switch strings.ToLower(direction) {
	case "horizontal":
		flipCode = 1
	case "vertical":
		flipCode = 0
	}

	output := gocv.NewMat()
	gocv.Flip(input, &output, flipCode)

	return output, nil
}

func (f *FlipFilter) GetName() string {
	return "Flip"
}

func (f *FlipFilter) GetDescription() string {
	return "Flips image horizontally or vertically"
}

func (f *FlipFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"direction": "horizontal",
	}
}

func (f *FlipFilter) Validate(params map[string]interface{}) error {
	direction := stringParam(params, "direction", "horizontal")
	switch strings.ToLower(direction) {
	case "horizontal", "vertical", "both":
		return nil
	}
	return fmt.Errorf("direction must be horizontal, vertical or both")
}

func (f *FlipFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "direction",
			Type:        "string",
			Default:     "horizontal",
			Description: "Mirror axis",
			Options:     []string{"horizontal", "vertical", "both"},
		},
	}
}

// ResizeFilter resizes an image to a target size or by a scale factor
type ResizeFilter struct{}

// NewResizeFilter creates a new resize filter
func NewResizeFilter() *ResizeFilter {
	return &ResizeFilter{}
}

func (rf *ResizeFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: resize", ErrInvalidInput)
	}

	// Absolute target size wins over a scale factor when both are given
	width := intParam(params, "width", 0)
	height := intParam(params, "height", 0)

	if width <= 0 || height <= 0 {
		scale := floatParam(params, "scale", 1.0)
		width = int(float64(input.Cols()) * scale)
		height = int(float64(input.Rows()) * scale)
	}

	if width < 1 || height < 1 {
		return gocv.NewMat(), fmt.Errorf("%w: resize target %dx%d", ErrInvalidInput, width, height)
	}

	output := gocv.NewMat()
	gocv.Resize(input, &output, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)

	return output, nil
}

func (rf *ResizeFilter) GetName() string {
	return "Resize"
}

func (rf *ResizeFilter) GetDescription() string {
	return "Resizes image to specified dimensions"
}

func (rf *ResizeFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"scale": 1.0,
	}
}

func (rf *ResizeFilter) Validate(params map[string]interface{}) error {
	if hasParam(params, "width") || hasParam(params, "height") {
		width := intParam(params, "width", 0)
		height := intParam(params, "height", 0)
		if width < 1 || height < 1 {
			return fmt.Errorf("width and height must both be positive")
		}
		return nil
	}

	scale := floatParam(params, "scale", 1.0)
	if scale < 0.25 || scale > 4.0 {
		return fmt.Errorf("scale must be between 0.25 and 4.0")
	}
	return nil
}

func (rf *ResizeFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "width",
			Type:        "int",
			Min:         1,
			Default:     0,
			Description: "Target width in pixels (overrides scale)",
		},
		{
			Name:        "height",
			Type:        "int",
			Min:         1,
			Default:     0,
			Description: "Target height in pixels (overrides scale)",
		},
		{
			Name:        "scale",
			Type:        "float",
			Min:         0.25,
			Max:         4.0,
			Default:     1.0,
			Description: "Scale factor used when no target size is given",
		},
	}
}
