// Package config holds the settings of both commands. Values come from an
// optional YAML file and are then overridden by command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Project configures `blockproj project`.
type Project struct {
	Alignments         string `yaml:"alignments" validate:"required"`
	Blocks             string `yaml:"blocks" validate:"required"`
	Mode               string `yaml:"mode" validate:"required,oneof=asm2ref ref2asm"`
	Policy             string `yaml:"policy" validate:"omitempty,oneof=strict adjacent-indel trailing-run"`
	IncludeEndingIndel bool   `yaml:"include_ending_indel"`
	IncludePostIndel   bool   `yaml:"include_post_indel"`
	PrimaryOnly        bool   `yaml:"primary_only"`
	Threads            int    `yaml:"threads" validate:"gte=0"`
	Output             string `yaml:"output" validate:"oneof=bed tsv jsonl"`
	Projectable        string `yaml:"projectable"`
	Projection         string `yaml:"projection"`
	Header             bool   `yaml:"header"`
	NoMatchExitCode    int    `yaml:"no_match_exit_code" validate:"gte=0,lte=125"`
}

// Relations configures `blockproj relations`.
type Relations struct {
	Alignments  string `yaml:"alignments" validate:"required"`
	Lengths     string `yaml:"lengths"`
	Suffix      string `yaml:"suffix"`
	PrimaryOnly bool   `yaml:"primary_only"`
	Output      string `yaml:"output" validate:"oneof=tsv jsonl"`
	Header      bool   `yaml:"header"`
}

// Log configures the stderr logger.
type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
}

// File is the layout of a configuration file.
type File struct {
	Project   Project   `yaml:"project"`
	Relations Relations `yaml:"relations"`
	Log       Log       `yaml:"log"`
}

// Defaults returns the settings used when neither a file nor a flag sets a
// value.
func Defaults() File {
	return File{
		Project: Project{
			Mode:            "asm2ref",
			Output:          "bed",
			NoMatchExitCode: 1,
		},
		Relations: Relations{
			Output: "tsv",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over Defaults. An empty path returns Defaults. Unknown keys
// are errors so that typos do not pass silently.
func Load(path string) (File, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks a section (Project, Relations or Log) after flags have been
// applied.
func Validate(section any) error {
	err := validate.Struct(section)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Sprintf("%s must be >= %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", name, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", name, fe.Tag())
}

// Override copies v into *dst when the named flag was set on the command line.
func Override[T any](changed func(string) bool, name string, dst *T, v T) {
	if changed(name) {
		*dst = v
	}
}
