package plugin

import (
	"errors"
	"strings"
)

// PlainDecoder takes the whole body as the accented line.
type PlainDecoder struct{}

func (pd *PlainDecoder) Decode(body []byte) (string, error) {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", errors.New("empty response body")
	}
	return text, nil
}

func (pd *PlainDecoder) Type() string { return "plain" }
