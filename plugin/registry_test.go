package plugin_test

import (
	"errors"
	"strings"
	"testing"

	Sp "github.com/maroda/scansion/plugin"
)

func TestDecoderLookup(t *testing.T) {
	t.Run("Returns known decoders", func(t *testing.T) {
		for _, known := range []string{"plain", "json_key"} {
			got, err := Sp.DecoderLookup(known, "accented")
			assertError(t, err, nil)
			assertStringContains(t, got.Type(), known)
		}
	})

	t.Run("Passes the argument to the factory", func(t *testing.T) {
		got, err := Sp.DecoderLookup("json_key", "result.text")
		assertError(t, err, nil)

		jd, ok := got.(*Sp.JSONKeyDecoder)
		if !ok {
			t.Fatalf("expected *JSONKeyDecoder, got %T", got)
		}
		assertStringContains(t, jd.Key, "result.text")
	})

	t.Run("Returns error if decoders don't exist", func(t *testing.T) {
		unknown := "craquemattic"
		_, err := Sp.DecoderLookup(unknown, "")
		assertGotError(t, err)
	})
}

// Helpers //

func assertError(t testing.TB, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Errorf("got error %q want %q", got, want)
	}
}

func assertGotError(t testing.TB, got error) {
	t.Helper()
	if got == nil {
		t.Errorf("Expected an error but got %q", got)
	}
}

func assertInt(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct value, got %d, want %d", got, want)
	}
}

func assertString(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func assertStringContains(t *testing.T, full, want string) {
	t.Helper()
	if !strings.Contains(full, want) {
		t.Errorf("Did not find %q, expected string contains %q", want, full)
	}
}
