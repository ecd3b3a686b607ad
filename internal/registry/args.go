package registry

// Helpers for pulling typed fields out of a decoded JSON operation body
// (map[string]any, as produced by encoding/json into an any-typed map).
// Missing or wrong-typed fields return the zero value rather than an
// error: operations validate what they actually need.

// Float64 returns body[key] as a float64, or 0 if absent/wrong type.
func Float64(body map[string]any, key string) float64 {
	v, _ := body[key].(float64)
	return v
}

// Float64Or returns body[key] as a float64, or def if absent/wrong type.
func Float64Or(body map[string]any, key string, def float64) float64 {
	v, ok := body[key].(float64)
	if !ok {
		return def
	}
	return v
}

// Int32 returns body[key] truncated to int32, or 0 if absent/wrong type.
func Int32(body map[string]any, key string) int32 {
	return int32(Float64(body, key))
}

// Uint16 returns body[key] truncated to uint16, or 0 if absent/wrong type.
func Uint16(body map[string]any, key string) uint16 {
	return uint16(Float64(body, key))
}

// Bool returns body[key] as a bool, or false if absent/wrong type.
func Bool(body map[string]any, key string) bool {
	v, _ := body[key].(bool)
	return v
}

// String returns body[key] as a string, or "" if absent/wrong type.
func String(body map[string]any, key string) string {
	v, _ := body[key].(string)
	return v
}
