package plugin

/*

	The Adapter sits aside /scansion/
	Contains core interfaces for Plugin

*/

import (
	"time"

	St "github.com/maroda/scansion/types"
)

// ResponseDecoder turns a stress model's response body into accented text,
// the line with '+' before each stressed vowel.
type ResponseDecoder interface {
	Decode(body []byte) (string, error)
	Type() string // Unique ID for the decoder
}

// OutputAdapter can be used to define a place for analyses to go,
// poem-by-poem or in batches if supported by the output type.
type OutputAdapter interface {
	WritePoem(poem *St.PoemAnalysis) error                       // Write a single analysis
	WriteBatch(poems []*St.PoemAnalysis) error                   // Write batches of analyses
	QueryRange(start, end time.Time) ([]*St.PoemAnalysis, error) // Time range query tool
	Flush() error                                                // Flush any buffered data
	Close() error                                                // Close the adapter and release resources
	Type() string                                                // ID for output
}
