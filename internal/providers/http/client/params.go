package client

import (
	"fmt"

	"github.com/GriffinCanCode/httpdata/internal/providers/http/headers"
	"github.com/GriffinCanCode/httpdata/internal/shared/types"
)

// Success creates successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// GetString extracts string parameter
func GetString(params map[string]interface{}, key string, required bool) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// GetBool extracts bool parameter
func GetBool(params map[string]interface{}, key string, defaultVal bool) bool {
	b, ok := params[key].(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// GetNumber extracts numeric parameter
func GetNumber(params map[string]interface{}, key string, required bool) (float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		if required {
			return 0, fmt.Errorf("%s parameter required", key)
		}
		return 0, nil
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s must be number", key)
	}
}

// GetMap extracts map parameter
func GetMap(params map[string]interface{}, key string) map[string]interface{} {
	m, _ := params[key].(map[string]interface{})
	return m
}

// GetArray extracts array parameter
func GetArray(params map[string]interface{}, key string) []interface{} {
	arr, _ := params[key].([]interface{})
	return arr
}

// HeadersFromParam builds request headers from a tool parameter mapping
// names to a string or a list of strings. The gzip Accept-Encoding default
// is kept unless the mapping names it.
func HeadersFromParam(params map[string]interface{}, key string) (*headers.Headers, error) {
	h := headers.New()
	for name, v := range GetMap(params, key) {
		switch x := v.(type) {
		case string:
			h.Del(name)
			if err := h.Add(name, x); err != nil {
				return nil, err
			}
		case []interface{}:
			h.Del(name)
			for _, e := range x {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("header %s: values must be strings", name)
				}
				if err := h.Add(name, s); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("header %s: value must be string or array", name)
		}
	}
	return h, nil
}

// LinesToMap groups header lines by display name, redacting credentials
// unless verbose.
func LinesToMap(lines []headers.Line, verbose bool) map[string]interface{} {
	out := make(map[string]interface{}, len(lines))
	for _, l := range lines {
		values, _ := out[l.Name].([]string)
		out[l.Name] = append(values, headers.Redact(l.Name, l.Value, verbose))
	}
	return out
}

// ResponseToMap converts a response to a result map
func ResponseToMap(resp *Response, verbose bool) map[string]interface{} {
	result := map[string]interface{}{
		"status":       resp.StatusCode,
		"status_text":  resp.Status,
		"body":         string(resp.Body),
		"size":         len(resp.Body),
		"time":         resp.Duration.Milliseconds(),
		"content_type": resp.ContentType,
		"request_id":   resp.RequestID,
	}

	lines, err := resp.Headers.ToWireLines()
	if err == nil {
		result["headers"] = LinesToMap(lines, verbose)
	}
	return result
}
