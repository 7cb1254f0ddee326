// Brightness and contrast adjustments
package filters

import (
	"fmt"

	"gocv.io/x/gocv"
)

// BrightnessAdjustment shifts every sample by a fixed offset
type BrightnessAdjustment struct{}

// NewBrightnessAdjustment creates a new brightness adjustment
func NewBrightnessAdjustment() *BrightnessAdjustment {
	return &BrightnessAdjustment{}
}

func (b *BrightnessAdjustment) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: brightness", ErrInvalidInput)
	}

	value := intParam(params, "value", 0)

	// Saturating add: results are clipped to [0,255] by the conversion
	output := gocv.NewMat()
	input.ConvertToWithParams(&output, input.Type(), 1.0, float32(value))

	return output, nil
}

func (b *BrightnessAdjustment) GetName() string {
	return "Brightness"
}

func (b *BrightnessAdjustment) GetDescription() string {
	return "Adjusts image brightness"
}

func (b *BrightnessAdjustment) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"value": 0,
	}
}

func (b *BrightnessAdjustment) Validate(params map[string]interface{}) error {
	value := intParam(params, "value", 0)
	if value < -100 || value > 100 {
		return fmt.Errorf("value must be between -100 and 100")
	}
	return nil
}

func (b *BrightnessAdjustment) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "value",
			Type:        "int",
			Min:         -100,
			Max:         100,
			Default:     0,
			Description: "Brightness offset added to every sample",
		},
	}
}

// ContrastAdjustment scales every sample by a fixed factor
type ContrastAdjustment struct{}

// NewContrastAdjustment creates a new contrast adjustment
func NewContrastAdjustment() *ContrastAdjustment {
	return &ContrastAdjustment{}
}

func (c *ContrastAdjustment) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: contrast", ErrInvalidInput)
	}

	value := floatParam(params, "value", 1.0)

	output := gocv.NewMat()
	input.ConvertToWithParams(&output, input.Type(), float32(value), 0)

	return output, nil
}

func (c *ContrastAdjustment) GetName() string {
	return "Contrast"
}

func (c *ContrastAdjustment) GetDescription() string {
	return "Adjusts image contrast"
}

func (c *ContrastAdjustment) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"value": 1.0,
	}
}

func (c *ContrastAdjustment) Validate(params map[string]interface{}) error {
	value := floatParam(params, "value", 1.0)
	if value < 0.5 || value > 3.0 {
		return fmt.Errorf("value must be between 0.5 and 3.0")
	}
	return nil
}

func (c *ContrastAdjustment) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "value",
			Type:        "float",
			Min:         0.5,
			Max:         3.0,
			Default:     1.0,
			Description: "Contrast multiplier applied to every sample",
		},
	}
}
