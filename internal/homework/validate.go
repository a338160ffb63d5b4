package homework

import (
	"fmt"

	"homework_bot/internal/model"
)

// Validate checks the shape of a decoded API response and extracts its
// homework records in the order the API returned them.
func Validate(payload any) ([]model.Homework, error) {
	resp, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrMalformedResponse, typeName(payload))
	}

	raw, ok := resp["homeworks"]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, "homeworks")
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, expected list", ErrWrongType, "homeworks", typeName(raw))
	}

	records := make([]model.Homework, 0, len(items))
	for i, item := range items {
		if i > 0 {
			// Only the first record is acted on; the rest are kept best-effort.
			if h, ok := looseHomework(item); ok {
				records = append(records, h)
			}
			continue
		}
		h, err := decodeHomework(item)
		if err != nil {
			return nil, fmt.Errorf("homeworks[0]: %w", err)
		}
		records = append(records, h)
	}
	return records, nil
}

// looseHomework decodes a record without field checks. Non-objects are dropped.
func looseHomework(item any) (model.Homework, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return model.Homework{}, false
	}
	name, _ := obj["homework_name"].(string)
	status, _ := obj["status"].(string)
	comment, _ := obj["reviewer_comment"].(string)
	updated, _ := obj["date_updated"].(string)
	return model.Homework{
		Name:            name,
		Status:          model.Status(status),
		ReviewerComment: comment,
		DateUpdated:     updated,
	}, true
}

func decodeHomework(item any) (model.Homework, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return model.Homework{}, fmt.Errorf("%w: record is %s, expected object", ErrWrongType, typeName(item))
	}

	name, err := requiredString(obj, "homework_name")
	if err != nil {
		return model.Homework{}, err
	}
	status, err := requiredString(obj, "status")
	if err != nil {
		return model.Homework{}, err
	}

	comment, _ := obj["reviewer_comment"].(string)
	updated, _ := obj["date_updated"].(string)

	return model.Homework{
		Name:            name,
		Status:          model.Status(status),
		ReviewerComment: comment,
		DateUpdated:     updated,
	}, nil
}

func requiredString(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %s, expected string", ErrWrongType, key, typeName(v))
	}
	return s, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
