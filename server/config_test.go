package scansion_test

import (
	"os"
	"testing"
	"time"

	Ss "github.com/maroda/scansion/server"
)

// Temporary OS file to use for testing configurations,
// the pattern extension tells cleanenv how to decode it
func createTempFile(t testing.TB, pattern, data string) (*os.File, func()) {
	t.Helper()
	tmpfile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("could not create temp file %v", err)
	}

	tmpfile.Write([]byte(data))
	removeFile := func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
	}
	return tmpfile, removeFile
}

func TestLoadConfigFileName(t *testing.T) {
	configFile, delConfig := createTempFile(t, "config*.yaml", `
language: en
dict_en: ./cmudict.dict
dict_en_format: cmu
accent_url: http://localhost:5000/accent
accent_timeout: 3s
output: badger
batch_size: 4
midi_beat: 120ms
log_format: json
`)
	defer delConfig()
	fileName := configFile.Name()

	t.Run("Reads file values", func(t *testing.T) {
		cfg, err := Ss.LoadConfigFileName(fileName)
		assertError(t, err, nil)

		assertString(t, cfg.Language, "en")
		assertString(t, cfg.DictENFormat, "cmu")
		assertString(t, cfg.Output, "badger")
		assertInt(t, cfg.BatchSize, 4)
		assertString(t, cfg.LogFormat, "json")
		if cfg.AccentTimeout != 3*time.Second || cfg.MIDIBeat != 120*time.Millisecond {
			t.Errorf("durations not read, got %v and %v", cfg.AccentTimeout, cfg.MIDIBeat)
		}
	})

	t.Run("Fills defaults for missing values", func(t *testing.T) {
		cfg, err := Ss.LoadConfigFileName(fileName)
		assertError(t, err, nil)

		assertString(t, cfg.Listen, ":8090")
		assertString(t, cfg.AccentDecoder, "plain")
		assertString(t, cfg.LogLevel, "info")
		assertString(t, cfg.OTel, "none")
		assertInt(t, cfg.MIDIRoot, 60)
	})

	t.Run("Environment wins over the file", func(t *testing.T) {
		t.Setenv("SCANSION_LISTEN", ":9999")
		t.Setenv("SCANSION_LANGUAGE", "ru")

		cfg, err := Ss.LoadConfigFileName(fileName)
		assertError(t, err, nil)
		assertString(t, cfg.Listen, ":9999")
		assertString(t, cfg.Language, "ru")
	})

	t.Run("Reads JSON", func(t *testing.T) {
		configFile, delConfig := createTempFile(t, "config*.json", `{"language":"ru","output":"midi","midi_port":2}`)
		defer delConfig()

		cfg, err := Ss.LoadConfigFileName(configFile.Name())
		assertError(t, err, nil)
		assertString(t, cfg.Output, "midi")
		assertInt(t, cfg.MIDIPort, 2)
	})

	t.Run("Errors on invalid values", func(t *testing.T) {
		configFile, delConfig := createTempFile(t, "config*.yaml", "language: de\n")
		defer delConfig()

		_, err := Ss.LoadConfigFileName(configFile.Name())
		assertGotError(t, err)
		assertStringContains(t, err.Error(), "language")
	})

	t.Run("Errors with malformed YAML", func(t *testing.T) {
		configFile, delConfig := createTempFile(t, "config*.yaml", "language: [en\n")
		defer delConfig()

		_, err := Ss.LoadConfigFileName(configFile.Name())
		assertGotError(t, err)
	})

	t.Run("Errors with an empty file", func(t *testing.T) {
		configFile, delConfig := createTempFile(t, "config*.yaml", ``)
		defer delConfig()

		_, err := Ss.LoadConfigFileName(configFile.Name())
		assertError(t, err, Ss.ErrEmptyFile)
	})

	t.Run("Errors with missing file", func(t *testing.T) {
		configFile, delConfig := createTempFile(t, "config*.yaml", ``)
		delConfig()

		_, err := Ss.LoadConfigFileName(configFile.Name())
		assertGotError(t, err)
	})
}

func TestLoadConfigEnv(t *testing.T) {
	t.Run("Defaults only", func(t *testing.T) {
		cfg, err := Ss.LoadConfigEnv()
		assertError(t, err, nil)
		assertString(t, cfg.Language, "ru")
		assertString(t, cfg.Output, "none")
		assertInt(t, cfg.BatchSize, 16)
	})

	t.Run("Environment values", func(t *testing.T) {
		t.Setenv("SCANSION_LANGUAGE", "en")
		t.Setenv("SCANSION_MIDI_BEAT", "50ms")

		cfg, err := Ss.LoadConfigEnv()
		assertError(t, err, nil)
		assertString(t, cfg.Language, "en")
		if cfg.MIDIBeat != 50*time.Millisecond {
			t.Errorf("got beat %v, want 50ms", cfg.MIDIBeat)
		}
	})

	t.Run("Invalid environment", func(t *testing.T) {
		t.Setenv("SCANSION_OUTPUT", "kafka")

		_, err := Ss.LoadConfigEnv()
		assertGotError(t, err)
		assertStringContains(t, err.Error(), "output")
	})
}

func TestConfigFile_Validate(t *testing.T) {
	cfg := Ss.ConfigFile{
		Language:     "en",
		DictENFormat: "json",
		Output:       "badger",
		BatchSize:    0,
		MIDIRoot:     200,
		LogLevel:     "loud",
		LogFormat:    "text",
		OTel:         "none",
	}

	err := cfg.Validate()
	assertGotError(t, err)
	assertStringContains(t, err.Error(), "batch_size")
	assertStringContains(t, err.Error(), "midi_root")
	assertStringContains(t, err.Error(), "log_level")

	cfg.BatchSize, cfg.MIDIRoot, cfg.LogLevel = 8, 64, "debug"
	assertError(t, cfg.Validate(), nil)
}
