package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/invertedv/owid/pipeline"
)

func newTestCmd(args ...string) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := newRootCmd(&options{})
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	return cmd, &out
}

func writeFile(t *testing.T, name, body string) string {
	path := filepath.Join(t.TempDir(), name)
	assert.Nil(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestConfig_Precedence(t *testing.T) {
	path := writeFile(t, "owid.yaml", "min_year: 2010\noutput: story.csv\n")

	tests := []struct {
		name    string
		args    []string
		minYear int
		output  string
	}{
		{"defaults", nil, pipeline.DefaultMinYear, pipeline.DefaultOutput},
		{"file", []string{"--config", path}, 2010, "story.csv"},
		{"flag over file", []string{"--config", path, "--min-year", "2015"}, 2015, "story.csv"},
		{"flag at default still wins", []string{"--config", path, "--min-year", "2001"}, 2001, "story.csv"},
		{"flag without file", []string{"--output", "x.csv"}, pipeline.DefaultMinYear, "x.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &options{}
			cmd := newRootCmd(opts)
			cmd.SetErr(io.Discard)
			assert.Nil(t, cmd.ParseFlags(tt.args))

			cfg, e := opts.config(cmd)
			assert.Nil(t, e)
			assert.Equal(t, tt.minYear, cfg.MinYear)
			assert.Equal(t, tt.output, cfg.Output)
		})
	}
}

func TestConfig_Invalid(t *testing.T) {
	opts := &options{}
	cmd := newRootCmd(opts)
	cmd.SetErr(io.Discard)
	assert.Nil(t, cmd.ParseFlags([]string{"--log-format", "xml"}))

	_, e := opts.config(cmd)
	assert.NotNil(t, e)

	opts = &options{}
	cmd = newRootCmd(opts)
	assert.Nil(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))

	_, e = opts.config(cmd)
	assert.NotNil(t, e)
}

func TestRoot_NoArgs(t *testing.T) {
	cmd, _ := newTestCmd("extra")
	assert.NotNil(t, cmd.ExecuteContext(context.Background()))
}

func TestRoot_Run(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("entity,code,year,life_expectancy_0,electdem_vdem__estimate_best,owid_region\n" +
			"World,OWID_WRL,2010,70,0.5,N/A\n" +
			"Chad,TCD,2005,52,0.25,Africa\n"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "owid.csv")
	cmd, stdout := newTestCmd("--url", srv.URL, "--output", out)
	assert.Nil(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, stdout.String(), "1 rows (2 read)")

	got, e := os.ReadFile(out)
	assert.Nil(t, e)
	assert.Equal(t, "entity,code,year,life_expectancy,x_value,x_variable,owid_region\n"+
		"Chad,TCD,2005,52,0.25,democracy,Africa\n", string(got))
}

func TestRoot_RunFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cmd, _ := newTestCmd("--url", srv.URL, "--output", filepath.Join(t.TempDir(), "owid.csv"))
	assert.NotNil(t, cmd.ExecuteContext(context.Background()))
}

func TestDescribe(t *testing.T) {
	path := writeFile(t, "owid.csv", "entity,le\nChad,52\nPeru,74.5\n")

	cmd, out := newTestCmd("describe", path)
	assert.Nil(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "rows: 2")
	assert.Contains(t, out.String(), "column: entity")
	assert.Contains(t, out.String(), "column: le")

	cmd, out = newTestCmd("describe", "--skip", "entity", path)
	assert.Nil(t, cmd.ExecuteContext(context.Background()))
	assert.NotContains(t, out.String(), "column: entity")
	assert.Contains(t, out.String(), "column: le")
}

func TestDescribe_Errors(t *testing.T) {
	path := writeFile(t, "owid.csv", "entity,le\nChad,52\n")

	tests := map[string][]string{
		"no file":        {"describe"},
		"two files":      {"describe", path, path},
		"missing file":   {"describe", filepath.Join(t.TempDir(), "missing.csv")},
		"unknown column": {"describe", "--skip", "nope", path},
		"skip all":       {"describe", "--skip", "entity,le", path},
	}

	for name, args := range tests {
		cmd, _ := newTestCmd(args...)
		assert.NotNil(t, cmd.ExecuteContext(context.Background()), name)
	}
}
