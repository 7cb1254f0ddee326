// Filter registry and the contract every image filter implements
package filters

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrUnknownFilter is returned when a filter key is not registered.
var ErrUnknownFilter = errors.New("unknown filter")

// ErrInvalidInput is returned when a filter receives an empty image.
var ErrInvalidInput = errors.New("invalid input image")

// Filter defines the interface for image filters
type Filter interface {
	Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error)
	GetName() string
	GetDescription() string
	GetDefaultParams() map[string]interface{}
	Validate(params map[string]interface{}) error
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "float", "string"
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
	Options     []string    `json:"options,omitempty"`
}

// FilterInfo is the displayable description of a registered filter.
type FilterInfo struct {
	DisplayName string
	Description string
}

var (
	registry = make(map[string]Filter)
	order    []string
)

// Register adds a filter under a key. Re-registering a key overwrites the
// previous filter and keeps its original position in the key order.
func Register(key string, filter Filter) {
	if _, exists := registry[key]; !exists {
		order = append(order, key)
	}
	registry[key] = filter
}

func Get(key string) (Filter, bool) {
	filter, exists := registry[key]
	return filter, exists
}

// Apply looks up a filter and runs it on the input image.
func Apply(key string, input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	filter, exists := registry[key]
	if !exists {
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrUnknownFilter, key)
	}

	return filter.Apply(input, params)
}

// ValidateParams checks parameters against a filter's documented ranges.
// Validation is advisory: filters clamp out-of-range values rather than
// reject them, so skipping this check is safe but may surprise the user.
func ValidateParams(key string, params map[string]interface{}) error {
	filter, exists := registry[key]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownFilter, key)
	}

	return filter.Validate(params)
}

func IsValidFilter(key string) bool {
	_, exists := registry[key]
	return exists
}

// Keys returns all filter keys in registration order.
func Keys() []string {
	keys := make([]string, len(order))
	copy(keys, order)
	return keys
}

// Describe returns the display name and description for a filter key.
func Describe(key string) (FilterInfo, bool) {
	filter, exists := registry[key]
	if !exists {
		return FilterInfo{}, false
	}

	return FilterInfo{
		DisplayName: filter.GetName(),
		Description: filter.GetDescription(),
	}, true
}

// Count returns the number of registered filters.
func Count() int {
	return len(registry)
}

// DefaultParams returns a copy of a filter's default parameter set, or nil
// for an unknown key.
func DefaultParams(key string) map[string]interface{} {
	filter, exists := registry[key]
	if !exists {
		return nil
	}

	defaults := filter.GetDefaultParams()
	out := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// Parameters returns the UI-generation metadata for a filter's parameters.
func Parameters(key string) []ParameterInfo {
	filter, exists := registry[key]
	if !exists {
		return nil
	}
	return filter.GetParameterInfo()
}

// ParameterRange resolves the numeric bounds and default of one filter
// parameter so widgets can be built from the filter's own metadata instead
// of hardcoded limits. The last return is false for unknown keys, unknown
// parameter names and non-numeric parameters.
func ParameterRange(key, name string) (float64, float64, float64, bool) {
	for _, info := range Parameters(key) {
		if info.Name != name {
			continue
		}

		min, okMin := numericValue(info.Min)
		max, okMax := numericValue(info.Max)
		def, okDef := numericValue(info.Default)
		if !okMin || !okMax || !okDef {
			return 0, 0, 0, false
		}
		return min, max, def, true
	}
	return 0, 0, 0, false
}

func init() {
	Register("grayscale", NewGrayscaleFilter())
	Register("blur", NewBlurFilter())
	Register("edge", NewEdgeDetectionFilter())
	Register("brightness", NewBrightnessAdjustment())
	Register("contrast", NewContrastAdjustment())
	Register("rotate", NewRotationFilter())
	Register("flip", NewFlipFilter())
	Register("resize", NewResizeFilter())
}
