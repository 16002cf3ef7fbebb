package scansion

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	St "github.com/maroda/scansion/types"
)

var ErrEmptyFile = errors.New("file is empty")

// ConfigFile is the runtime configuration.
// Priority is ENV > file > env-default tags.
type ConfigFile struct {
	Listen   string `json:"listen"   yaml:"listen"   env:"SCANSION_LISTEN"   env-default:":8090"`
	Language string `json:"language" yaml:"language" env:"SCANSION_LANGUAGE" env-default:"ru"`

	DictEN       string `json:"dict_en"        yaml:"dict_en"        env:"SCANSION_DICT_EN"`
	DictENFormat string `json:"dict_en_format" yaml:"dict_en_format" env:"SCANSION_DICT_EN_FORMAT" env-default:"json"`
	DictRU       string `json:"dict_ru"        yaml:"dict_ru"        env:"SCANSION_DICT_RU"`

	AccentURL     string        `json:"accent_url"      yaml:"accent_url"      env:"SCANSION_ACCENT_URL"`
	AccentDecoder string        `json:"accent_decoder"  yaml:"accent_decoder"  env:"SCANSION_ACCENT_DECODER" env-default:"plain"`
	AccentKey     string        `json:"accent_key"      yaml:"accent_key"      env:"SCANSION_ACCENT_KEY"`
	AccentRate    float64       `json:"accent_rate"     yaml:"accent_rate"     env:"SCANSION_ACCENT_RATE"    env-default:"5"`
	AccentTimeout time.Duration `json:"accent_timeout"  yaml:"accent_timeout"  env:"SCANSION_ACCENT_TIMEOUT" env-default:"10s"`

	Output     string `json:"output"      yaml:"output"      env:"SCANSION_OUTPUT"      env-default:"none"`
	BadgerPath string `json:"badger_path" yaml:"badger_path" env:"SCANSION_BADGER_PATH" env-default:"./scansion.db"`
	BatchSize  int    `json:"batch_size"  yaml:"batch_size"  env:"SCANSION_BATCH_SIZE"  env-default:"16"`

	MIDIPort int           `json:"midi_port" yaml:"midi_port" env:"SCANSION_MIDI_PORT" env-default:"0"`
	MIDIRoot int           `json:"midi_root" yaml:"midi_root" env:"SCANSION_MIDI_ROOT" env-default:"60"`
	MIDIBeat time.Duration `json:"midi_beat" yaml:"midi_beat" env:"SCANSION_MIDI_BEAT" env-default:"200ms"`

	LogLevel  string `json:"log_level"  yaml:"log_level"  env:"SCANSION_LOG_LEVEL"  env-default:"info"`
	LogFormat string `json:"log_format" yaml:"log_format" env:"SCANSION_LOG_FORMAT" env-default:"text"`
	OTel      string `json:"otel"       yaml:"otel"       env:"SCANSION_OTEL"       env-default:"none"`
}

// LoadConfigFileName pulls a given filename config off local disk.
// Validation is performed on the file before reading.
func LoadConfigFileName(filename string) (*ConfigFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// validation
	err = validateLoad(file)
	if err != nil {
		slog.Error("Validation failed", slog.Any("Error", err))
		return nil, err
	}

	var cfg ConfigFile
	if err := cleanenv.ReadConfig(filename, &cfg); err != nil {
		slog.Error("could not decode file", slog.String("file", filename))
		return nil, fmt.Errorf("config: read %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// LoadConfigEnv builds the configuration from the environment and defaults only.
func LoadConfigEnv() (*ConfigFile, error) {
	var cfg ConfigFile
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func validateLoad(file *os.File) error {
	// validate file
	info, err := file.Stat()
	if err != nil {
		slog.Error("could not stat file")
		return err
	}

	// validate size
	if info.Size() == 0 {
		slog.Error("file is empty", slog.String("file", file.Name()))
		return ErrEmptyFile
	}

	return nil
}

// Validate checks enumerated settings.
func (c *ConfigFile) Validate() error {
	var errs []error

	if c.Language != string(St.Russian) && c.Language != string(St.English) {
		errs = append(errs, fmt.Errorf("language must be one of %q, %q: got %q", St.Russian, St.English, c.Language))
	}
	if !slices.Contains([]string{"json", "cmu"}, c.DictENFormat) {
		errs = append(errs, fmt.Errorf("dict_en_format must be json or cmu: got %q", c.DictENFormat))
	}
	if !slices.Contains([]string{"none", "badger", "midi"}, c.Output) {
		errs = append(errs, fmt.Errorf("output must be none, badger or midi: got %q", c.Output))
	}
	if c.Output == "badger" && c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("batch_size must be positive: got %d", c.BatchSize))
	}
	if c.MIDIRoot < 0 || c.MIDIRoot > 127 {
		errs = append(errs, fmt.Errorf("midi_root must be 0..127: got %d", c.MIDIRoot))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn or error: got %q", c.LogLevel))
	}
	if !slices.Contains([]string{"text", "json"}, c.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format must be text or json: got %q", c.LogFormat))
	}
	if !slices.Contains([]string{"none", "honeycomb", "grafana"}, c.OTel) {
		errs = append(errs, fmt.Errorf("otel must be none, honeycomb or grafana: got %q", c.OTel))
	}

	return errors.Join(errs...)
}
