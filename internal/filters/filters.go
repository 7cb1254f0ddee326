// Color and convolution filters
package filters

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// GrayscaleFilter converts an image to grayscale
type GrayscaleFilter struct{}

// NewGrayscaleFilter creates a new grayscale filter
func NewGrayscaleFilter() *GrayscaleFilter {
	return &GrayscaleFilter{}
}

func (g *GrayscaleFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: grayscale", ErrInvalidInput)
	}

	// Already single-channel: nothing to desaturate
	if input.Channels() == 1 {
		return input.Clone(), nil
	}

	toGray, fromGray := grayConversions(input.Channels())

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(input, &gray, toGray)

	// Convert back so the channel count stays constant for display
	output := gocv.NewMat()
	gocv.CvtColor(gray, &output, fromGray)

	return output, nil
}

// grayConversions picks the conversion pair matching the input's channel
// count, so BGRA images stay BGRA through a desaturate round trip.
func grayConversions(channels int) (gocv.ColorConversionCode, gocv.ColorConversionCode) {
	if channels == 4 {
		return gocv.ColorBGRAToGray, gocv.ColorGrayToBGRA
	}
	return gocv.ColorBGRToGray, gocv.ColorGrayToBGR
}

func (g *GrayscaleFilter) GetName() string {
	return "Grayscale"
}

func (g *GrayscaleFilter) GetDescription() string {
	return "Converts image to black and white"
}

func (g *GrayscaleFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{}
}

func (g *GrayscaleFilter) Validate(params map[string]interface{}) error {
	return nil
}

func (g *GrayscaleFilter) GetParameterInfo() []ParameterInfo {
	return nil
}

// BlurFilter applies Gaussian blur with adjustable intensity
type BlurFilter struct{}

// NewBlurFilter creates a new Gaussian blur filter
func NewBlurFilter() *BlurFilter {
	return &BlurFilter{}
}

func (b *BlurFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: blur", ErrInvalidInput)
	}

	intensity := intParam(params, "intensity", 5)

	// Kernel size must be odd and at least 1; even intensities round up
	kernelSize := intensity
	if kernelSize%2 == 0 {
		kernelSize++
	}
	if kernelSize < 1 {
		kernelSize = 1
	}

	output := gocv.NewMat()
	gocv.GaussianBlur(input, &output, image.Pt(kernelSize, kernelSize), 0, 0, gocv.BorderDefault)

	return output, nil
}

func (b *BlurFilter) GetName() string {
	return "Blur"
}

func (b *BlurFilter) GetDescription() string {
	return "Applies Gaussian blur effect"
}

func (b *BlurFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"intensity": 5,
	}
}

func (b *BlurFilter) Validate(params map[string]interface{}) error {
	intensity := intParam(params, "intensity", 5)
	if intensity < 1 || intensity > 50 {
		return fmt.Errorf("intensity must be between 1 and 50")
	}
	return nil
}

func (b *BlurFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "intensity",
			Type:        "int",
			Min:         1,
			Max:         50,
			Default:     5,
			Description: "Blur kernel size (even values rounded up to odd)",
		},
	}
}

// EdgeDetectionFilter detects edges using the Canny algorithm
type EdgeDetectionFilter struct{}

// NewEdgeDetectionFilter creates a new edge detection filter
func NewEdgeDetectionFilter() *EdgeDetectionFilter {
	return &EdgeDetectionFilter{}
}

func (e *EdgeDetectionFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: edge", ErrInvalidInput)
	}

	threshold1 := intParam(params, "threshold1", 100)
	threshold2 := intParam(params, "threshold2", 200)

	toGray, fromGray := grayConversions(input.Channels())

	// Canny operates on a single-channel image
	var gray gocv.Mat
	if input.Channels() > 1 {
		gray = gocv.NewMat()
		gocv.CvtColor(input, &gray, toGray)
	} else {
		gray = input.Clone()
	}
	defer gray.Close()

	edges := gocv.NewMat()
	gocv.Canny(gray, &edges, float32(threshold1), float32(threshold2))

	// Re-expand to the input channel count for display
	if input.Channels() > 1 {
		defer edges.Close()
		output := gocv.NewMat()
		gocv.CvtColor(edges, &output, fromGray)
		return output, nil
	}

	return edges, nil
}

func (e *EdgeDetectionFilter) GetName() string {
	return "Edge Detection"
}

func (e *EdgeDetectionFilter) GetDescription() string {
	return "Detects edges using Canny algorithm"
}

func (e *EdgeDetectionFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"threshold1": 100,
		"threshold2": 200,
	}
}

func (e *EdgeDetectionFilter) Validate(params map[string]interface{}) error {
	threshold1 := intParam(params, "threshold1", 100)
	threshold2 := intParam(params, "threshold2", 200)

	if threshold1 < 0 || threshold1 > 500 {
		return fmt.Errorf("threshold1 must be between 0 and 500")
	}
	if threshold2 < 0 || threshold2 > 500 {
		return fmt.Errorf("threshold2 must be between 0 and 500")
	}
	return nil
}

func (e *EdgeDetectionFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "threshold1",
			Type:        "int",
			Min:         0,
			Max:         500,
			Default:     100,
			Description: "First threshold for hysteresis",
		},
		{
			Name:        "threshold2",
			Type:        "int",
			Min:         0,
			Max:         500,
			Default:     200,
			Description: "Second threshold for hysteresis",
		},
	}
}
