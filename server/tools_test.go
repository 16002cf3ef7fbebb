package scansion_test

import (
	"testing"

	Ss "github.com/maroda/scansion/server"
)

func TestFillEnvVar(t *testing.T) {

	t.Run("returns a default value", func(t *testing.T) {
		ev := "ANYTHING"
		want := "ENOENT"
		got := Ss.FillEnvVar(ev)

		assertString(t, got, want)
	})

	t.Run("returns a set value", func(t *testing.T) {
		ev := "TOKEN"
		want := "ghp_1q2w3e4r5t6y7u8i9o0p"
		t.Setenv(ev, want)

		got := Ss.FillEnvVar(ev)
		assertString(t, got, want)
	})
}

func TestFloatPrecise(t *testing.T) {
	assertFloat(t, Ss.FloatPrecise(2.0/3, 2), 0.67)
	if got := Ss.FloatPrecise(0.125, 1); got != 0.1 {
		t.Errorf("got %v, want 0.1", got)
	}
}
