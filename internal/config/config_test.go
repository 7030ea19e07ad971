package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockproj.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "asm2ref", cfg.Project.Mode)
	assert.Equal(t, "bed", cfg.Project.Output)
	assert.Equal(t, "tsv", cfg.Relations.Output)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
project:
  alignments: aln.paf.gz
  blocks: genes.bed
  mode: ref2asm
  include_ending_indel: true
  threads: 8
  output: jsonl
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "aln.paf.gz", cfg.Project.Alignments)
	assert.Equal(t, "ref2asm", cfg.Project.Mode)
	assert.True(t, cfg.Project.IncludeEndingIndel)
	assert.Equal(t, 8, cfg.Project.Threads)
	assert.Equal(t, "jsonl", cfg.Project.Output)
	assert.Equal(t, 1, cfg.Project.NoMatchExitCode, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, Validate(cfg.Project))
	assert.NoError(t, Validate(cfg.Log))
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "project:\n  mdoe: asm2ref\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Load(writeFile(t, "project: [1, 2"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	p := Defaults().Project
	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alignments is required")

	p.Alignments, p.Blocks = "a.paf", "b.bed"
	require.NoError(t, Validate(p))

	p.Mode = "asm2asm"
	err = Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `mode must be one of [asm2ref ref2asm], got "asm2asm"`)

	p.Mode = "ref2asm"
	p.Policy = "trailing-run"
	require.NoError(t, Validate(p))
	p.Policy = "post-indel"
	err = Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "policy must be one of")

	p.Policy = ""
	p.Threads = -1
	err = Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threads must be >= 0")

	r := Defaults().Relations
	r.Alignments = "a.paf"
	r.Output = "bed"
	assert.Error(t, Validate(r))

	assert.Error(t, Validate(Log{Level: "loud"}))
}

func TestOverride(t *testing.T) {
	set := map[string]bool{"threads": true}
	changed := func(name string) bool { return set[name] }

	p := Project{Threads: 4, Mode: "ref2asm"}
	Override(changed, "threads", &p.Threads, 2)
	Override(changed, "mode", &p.Mode, "asm2ref")
	assert.Equal(t, 2, p.Threads)
	assert.Equal(t, "ref2asm", p.Mode)
}
