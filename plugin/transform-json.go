package plugin

/*
	JSONKey

	This plugin allows a stress model that answers in JSON.

	Returns the string held at a dotted key path inside a JSON object,
	e.g. "result.accented" for {"result":{"accented":"з+имний в+ечер"}}
*/

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

type JSONKeyDecoder struct {
	Key string
}

// NewJSONKeyDecoder returns a struct for what to search in the JSON
func NewJSONKeyDecoder(key string) *JSONKeyDecoder {
	return &JSONKeyDecoder{Key: key}
}

// Decode extracts the JSONKeyDecoder key from the JSON body
func (jd *JSONKeyDecoder) Decode(body []byte) (string, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		slog.Error("Error unmarshalling json",
			slog.String("search", jd.Key),
			slog.String("json", string(body)),
			slog.Any("error", err))
		return "", fmt.Errorf("error unmarshalling json from response: %w", err)
	}

	value, err := ExtractValue(data, jd.Key)
	if err != nil {
		return "", fmt.Errorf("error extracting json value from response: %w", err)
	}

	return value, nil
}

func ExtractValue(data interface{}, key string) (string, error) {
	current := data

	if key != "" {
		for _, k := range strings.Split(key, ".") {
			switch v := current.(type) {
			case map[string]interface{}:
				var ok bool
				current, ok = v[k]
				if !ok {
					return "", fmt.Errorf("key %s not found", k)
				}
			case []interface{}:
				return "", fmt.Errorf("array indexing not implemented yet")
			default:
				return "", fmt.Errorf("cannot traverse into type %T at key %s", v, k)
			}
		}
	}

	switch v := current.(type) {
	case string:
		return v, nil
	case []interface{}:
		// some models answer with one accented token per word
		words := make([]string, 0, len(v))
		for _, w := range v {
			s, ok := w.(string)
			if !ok {
				return "", fmt.Errorf("list item is %T, not a string", w)
			}
			words = append(words, s)
		}
		return strings.Join(words, " "), nil
	default:
		return "", fmt.Errorf("value not text, cannot use %T", v)
	}
}

func (jd *JSONKeyDecoder) Type() string { return "json_key" }
