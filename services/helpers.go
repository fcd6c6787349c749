package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/pickup-games/models"
)

// updateSanitizer описывает, какие поля частичного обновления игнорируются
// и какие поля содержат время в формате RFC 3339.
type updateSanitizer struct {
	ignored    []string
	timeFields []string
}

// sanitize drops ignored keys and converts JSON values into store-friendly Go
// values: whole numbers become int64 and time fields become time.Time.
func (u updateSanitizer) sanitize(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "" || containsString(u.ignored, k) {
			continue
		}
		if containsString(u.timeFields, k) {
			t, err := parseTimeValue(k, v)
			if err != nil {
				return nil, err
			}
			out[k] = t
			continue
		}
		out[k] = normalizeJSONValue(v)
	}
	return out, nil
}

func parseTimeValue(field string, v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(t))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s must be an RFC 3339 timestamp", ErrValidationFailed, field)
		}
		return parsed.UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s must be an RFC 3339 timestamp", ErrValidationFailed, field)
	}
}

func normalizeJSONValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return int64(t)
		}
		return t
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalizeJSONValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = normalizeJSONValue(val)
		}
		return s
	default:
		return v
	}
}

// positiveInt проверяет значение, уже прошедшее normalizeJSONValue.
func positiveInt(field string, v any) error {
	n, ok := v.(int64)
	if !ok || n <= 0 {
		return fmt.Errorf("%w: %s must be a positive integer", ErrValidationFailed, field)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func requiredFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidationFailed, strings.Join(missing, ", "))
	}
	return nil
}

// actsUnrestricted сообщает, может ли вызывающий действовать от имени других.
// caller == nil означает, что аутентификация выключена.
func actsUnrestricted(caller *models.User) bool {
	return caller == nil || caller.Role == models.RoleAdmin
}
