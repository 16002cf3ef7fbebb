package plugin

import "fmt"

// Decoders is a global map of ResponseDecoder plugins.
// The factory argument is decoder specific, e.g. the key path for json_key.
var Decoders = map[string]func(arg string) ResponseDecoder{
	"plain": func(string) ResponseDecoder {
		return &PlainDecoder{}
	},
	"json_key": func(arg string) ResponseDecoder {
		return NewJSONKeyDecoder(arg)
	},
}

func DecoderLookup(name, arg string) (ResponseDecoder, error) {
	factory, ok := Decoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown decoder: %s", name)
	}
	return factory(arg), nil
}
