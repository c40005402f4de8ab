package mython

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

type programFixture struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

func loadProgramFixtures(t *testing.T) []programFixture {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "programs.yaml"))
	if err != nil {
		t.Fatalf("read fixtures: %v", err)
	}
	var fixtures []programFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		t.Fatalf("decode fixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Fatalf("no fixtures found")
	}
	return fixtures
}

func TestProgramFixtures(t *testing.T) {
	for _, fixture := range loadProgramFixtures(t) {
		t.Run(fixture.Name, func(t *testing.T) {
			engine := NewEngine(Config{})
			program, err := engine.Compile(fixture.Source)
			if err != nil {
				t.Fatalf("compile error: %v", err)
			}

			var buf bytes.Buffer
			err = program.Run(context.Background(), NewContext(&buf))
			if fixture.Error != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, output %q", fixture.Error, buf.String())
				}
				if !strings.Contains(err.Error(), fixture.Error) {
					t.Fatalf("error %q does not mention %q", err.Error(), fixture.Error)
				}
				return
			}
			if err != nil {
				t.Fatalf("run error: %v", err)
			}
			if diff := cmp.Diff(fixture.Output, buf.String()); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
