package filters_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"interactive-image-editor/internal/filters"
)

func TestKeys_RegistrationOrder(t *testing.T) {
	keys := filters.Keys()

	require.Equal(t, []string{
		"grayscale",
		"blur",
		"edge",
		"brightness",
		"contrast",
		"rotate",
		"flip",
		"resize",
	}, keys)
}

func TestCount_MatchesRegistry(t *testing.T) {
	require.Equal(t, len(filters.Keys()), filters.Count())
}

func TestGet_KnownAndUnknown(t *testing.T) {
	filter, ok := filters.Get("blur")
	require.True(t, ok)
	require.Equal(t, "Blur", filter.GetName())

	_, ok = filters.Get("sharpen")
	require.False(t, ok)
}

func TestDescribe(t *testing.T) {
	info, ok := filters.Describe("edge")
	require.True(t, ok)
	require.Equal(t, "Edge Detection", info.DisplayName)
	require.NotEmpty(t, info.Description)

	_, ok = filters.Describe("sharpen")
	require.False(t, ok)
}

func TestApply_UnknownFilter(t *testing.T) {
	input := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer input.Close()

	_, err := filters.Apply("sharpen", input, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, filters.ErrUnknownFilter))
}

func TestValidateParams_AdvisoryBounds(t *testing.T) {
	require.NoError(t, filters.ValidateParams("blur", map[string]interface{}{"intensity": 5}))
	require.Error(t, filters.ValidateParams("blur", map[string]interface{}{"intensity": 60}))

	require.NoError(t, filters.ValidateParams("brightness", map[string]interface{}{"value": -100}))
	require.Error(t, filters.ValidateParams("brightness", map[string]interface{}{"value": 150}))

	require.NoError(t, filters.ValidateParams("contrast", map[string]interface{}{"value": 1.5}))
	require.Error(t, filters.ValidateParams("contrast", map[string]interface{}{"value": 0.2}))

	require.Error(t, filters.ValidateParams("flip", map[string]interface{}{"direction": "diagonal"}))

	err := filters.ValidateParams("sharpen", nil)
	require.True(t, errors.Is(err, filters.ErrUnknownFilter))
}

func TestDefaultParams(t *testing.T) {
	defaults := filters.DefaultParams("edge")
	require.Equal(t, map[string]interface{}{
		"threshold1": 100,
		"threshold2": 200,
	}, defaults)

	// The returned map is a copy
	defaults["threshold1"] = 999
	require.Equal(t, 100, filters.DefaultParams("edge")["threshold1"])

	require.Nil(t, filters.DefaultParams("sharpen"))
}

func TestParameters(t *testing.T) {
	params := filters.Parameters("blur")
	require.Len(t, params, 1)
	require.Equal(t, "intensity", params[0].Name)
	require.Equal(t, "int", params[0].Type)

	require.Empty(t, filters.Parameters("grayscale"))
	require.Nil(t, filters.Parameters("sharpen"))
}

func TestParameterRange(t *testing.T) {
	min, max, def, ok := filters.ParameterRange("blur", "intensity")
	require.True(t, ok)
	require.Equal(t, 1.0, min)
	require.Equal(t, 50.0, max)
	require.Equal(t, 5.0, def)

	min, max, def, ok = filters.ParameterRange("resize", "scale")
	require.True(t, ok)
	require.Equal(t, 0.25, min)
	require.Equal(t, 4.0, max)
	require.Equal(t, 1.0, def)

	// String parameter carries no numeric range
	_, _, _, ok = filters.ParameterRange("flip", "direction")
	require.False(t, ok)

	_, _, _, ok = filters.ParameterRange("blur", "radius")
	require.False(t, ok)

	_, _, _, ok = filters.ParameterRange("sharpen", "amount")
	require.False(t, ok)
}

// stubFilter is a minimal Filter used to exercise overwrite semantics.
type stubFilter struct{}

func (s *stubFilter) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	return input.Clone(), nil
}
func (s *stubFilter) GetName() string                           { return "Stub" }
func (s *stubFilter) GetDescription() string                    { return "stub" }
func (s *stubFilter) GetDefaultParams() map[string]interface{}  { return nil }
func (s *stubFilter) Validate(map[string]interface{}) error     { return nil }
func (s *stubFilter) GetParameterInfo() []filters.ParameterInfo { return nil }

func TestRegister_OverwriteKeepsOrderAndCount(t *testing.T) {
	original, ok := filters.Get("blur")
	require.True(t, ok)
	defer filters.Register("blur", original)

	keysBefore := filters.Keys()
	countBefore := filters.Count()

	filters.Register("blur", &stubFilter{})

	replaced, ok := filters.Get("blur")
	require.True(t, ok)
	require.Equal(t, "Stub", replaced.GetName())
	require.Equal(t, keysBefore, filters.Keys())
	require.Equal(t, countBefore, filters.Count())
}
