package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/GriffinCanCode/httpdata/internal/infrastructure/config"
	"github.com/GriffinCanCode/httpdata/internal/logging"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := newApp(config.Default(), logging.Nop())
	var out bytes.Buffer
	err := a.run(context.Background(), args, strings.NewReader(stdin), &out)
	return out.String(), err
}

func decodeJSON(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, sonic.UnmarshalString(s, &m))
	return m
}

func TestParseCommand(t *testing.T) {
	out, err := runCLI(t, "", "parse", "https://example.com:8080/a/b?x=1&x=2#top")
	require.NoError(t, err)

	m := decodeJSON(t, out)
	assert.Equal(t, "https", m["scheme"])
	assert.Equal(t, "example.com", m["host"])
	assert.Equal(t, "/a/b", m["path"])
	assert.Equal(t, "top", m["fragment"])
	assert.Equal(t, map[string]interface{}{"x": []interface{}{"1", "2"}}, m["query"])

	t.Run("verbatim", func(t *testing.T) {
		out, err := runCLI(t, "", "parse", "-verbatim", "https://example.com/a%20b")
		require.NoError(t, err)
		assert.Equal(t, []interface{}{"", "a%20b"}, decodeJSON(t, out)["path_parts"])
	})

	t.Run("needs one url", func(t *testing.T) {
		_, err := runCLI(t, "", "parse")
		assert.EqualError(t, err, "parse takes exactly one url")
	})
}

func TestBuildCommandYAML(t *testing.T) {
	out, err := runCLI(t, "",
		"-format", "yaml", "build",
		"-path", "v1/items",
		"-param", "q=a b", "-param", "q=c", "-param", "limit=5",
		"-fragment", "top",
		"https://example.com")
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &m))
	assert.Equal(t, "https://example.com/v1/items?limit=5&q=a%20b&q=c#top", m["url"])

	t.Run("bad param", func(t *testing.T) {
		_, err := runCLI(t, "", "build", "-param", "novalue", "https://example.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be name=value")
	})
}

func TestParseCommandTOML(t *testing.T) {
	out, err := runCLI(t, "", "-format", "toml", "parse", "http://example.com/x")
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &m))
	assert.Equal(t, "http", m["scheme"])
	assert.Equal(t, "/x", m["path"])
}

func TestHeadersCommand(t *testing.T) {
	stdin := "Authorization: Bearer secret\r\nX-Custom: one\n\nX-Custom: two\n"

	out, err := runCLI(t, stdin, "headers")
	require.NoError(t, err)
	m := decodeJSON(t, out)
	got := m["headers"].(map[string]interface{})
	assert.Equal(t, []interface{}{"<Not Logged>"}, got["Authorization"])
	assert.Equal(t, []interface{}{"one", "two"}, got["x-custom"])
	assert.Contains(t, m["curl"], "-H 'Authorization: <Not Logged>'")

	t.Run("verbose", func(t *testing.T) {
		out, err := runCLI(t, stdin, "headers", "-verbose")
		require.NoError(t, err)
		got := decodeJSON(t, out)["headers"].(map[string]interface{})
		assert.Equal(t, []interface{}{"Bearer secret"}, got["Authorization"])
	})

	t.Run("malformed line", func(t *testing.T) {
		_, err := runCLI(t, "no colon here\n", "headers")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no ':'")
	})
}

func TestToolsAndCall(t *testing.T) {
	out, err := runCLI(t, "", "tools")
	require.NoError(t, err)
	tools := decodeJSON(t, out)["tools"].([]interface{})
	var ids []string
	for _, tool := range tools {
		ids = append(ids, tool.(map[string]interface{})["id"].(string))
	}
	assert.Contains(t, ids, "http.escape")
	assert.Contains(t, ids, "http.parseURL")

	out, err = runCLI(t, "", "call", "http.escape", `{"text":"a b","mode":"path"}`)
	require.NoError(t, err)
	assert.Equal(t, "a%20b", decodeJSON(t, out)["text"])

	t.Run("tool failure", func(t *testing.T) {
		_, err := runCLI(t, "", "call", "http.escape", `{"text":"a","mode":"nope"}`)
		assert.EqualError(t, err, "http.escape: invalid mode: nope")
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := runCLI(t, "", "call", "http.nope")
		assert.EqualError(t, err, `unknown tool "http.nope"`)
	})

	t.Run("bad params", func(t *testing.T) {
		_, err := runCLI(t, "", "call", "http.escape", "{")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid params")
	})
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown command", []string{"frob"}, `unknown command "frob"`},
		{"bad format", []string{"-format", "xml", "tools"}, "unsupported format: xml (must be json, yaml or toml)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			assert.EqualError(t, err, tt.want)
		})
	}

	t.Run("no command", func(t *testing.T) {
		_, err := runCLI(t, "")
		assert.ErrorIs(t, err, flag.ErrHelp)
	})
}
