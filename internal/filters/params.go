package filters

// Parameter bags arrive from sliders as float64 and from code as int or
// float64. These helpers accept either numeric form.

func intParam(params map[string]interface{}, name string, fallback int) int {
	val, ok := params[name]
	if !ok {
		return fallback
	}

	switch v := val.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

func floatParam(params map[string]interface{}, name string, fallback float64) float64 {
	val, ok := params[name]
	if !ok {
		return fallback
	}

	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

func stringParam(params map[string]interface{}, name string, fallback string) string {
	if val, ok := params[name]; ok {
		if v, ok := val.(string); ok {
			return v
		}
	}
	return fallback
}

func hasParam(params map[string]interface{}, name string) bool {
	_, ok := params[name]
	return ok
}

func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
