package content

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/GriffinCanCode/httpdata/internal/data/arraymap"
	"github.com/GriffinCanCode/httpdata/internal/data/catalog"
	"github.com/GriffinCanCode/httpdata/internal/data/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

const (
	colorUnset color = iota
	colorRed
	colorBlue
)

type form struct {
	record.Record
	Name  string   `key:"name"`
	Tags  []string `key:"tag"`
	Count int64    `key:"count"`
	Color color    `key:"color"`
}

func init() {
	catalog.MustRegisterEnum(reflect.TypeFor[color](),
		catalog.Enumerant{Value: colorRed, Name: "red"},
		catalog.Enumerant{Value: colorBlue, Name: "blue"},
		catalog.Enumerant{Value: colorUnset, Null: true},
	)
}

func newForm() *form {
	f := &form{}
	f.MustBind(f, catalog.CaseSensitive)
	return f
}

func sampleForm(t *testing.T) *form {
	f := newForm()
	f.Name = "a b"
	f.Tags = []string{"x", "y"}
	f.Count = 3
	f.Color = colorRed
	require.NoError(t, f.Set("extra", ""))
	return f
}

func TestURLEncoded(t *testing.T) {
	tests := []struct {
		name string
		opts []FormOption
		want string
	}{
		{name: "form escaping", want: "color=red&count=3&name=a+b&tag=x&tag=y&extra"},
		{name: "path escaping", opts: []FormOption{WithPathEscaping()}, want: "color=red&count=3&name=a%20b&tag=x&tag=y&extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(URLEncoded(sampleForm(t), tt.opts...)))
		})
	}
}

func TestURLEncodedSkipsNil(t *testing.T) {
	f := newForm()
	require.NoError(t, f.Set("a", nil))
	require.NoError(t, f.Set("b", "1"))
	assert.Equal(t, "b=1", string(URLEncoded(f)))
}

func TestDecodeURLEncoded(t *testing.T) {
	f := newForm()
	err := DecodeURLEncoded([]byte("name=a+b&tag=x&tag=y&count=2&color=blue&zz=1"), f)
	require.NoError(t, err)

	assert.Equal(t, "a b", f.Name)
	assert.Equal(t, []string{"x", "y"}, f.Tags)
	assert.Equal(t, int64(2), f.Count)
	assert.Equal(t, colorBlue, f.Color)
	v, ok := f.Get("zz")
	require.True(t, ok)
	assert.Equal(t, []string{"1"}, v)

	t.Run("empty body", func(t *testing.T) {
		require.NoError(t, DecodeURLEncoded(nil, newForm()))
	})
}

func TestJSON(t *testing.T) {
	f := newForm()
	f.Name = "a"
	f.Tags = []string{"x", "y"}
	f.Count = 3
	f.Color = colorRed
	meta := arraymap.New[string, any](1)
	meta.Add("k", 1)
	require.NoError(t, f.Set("meta", meta))

	data, err := JSON(f)
	require.NoError(t, err)
	assert.Equal(t, `{"color":"red","count":3,"name":"a","tag":["x","y"],"meta":{"k":1}}`, string(data))
}

func TestJSONEmpty(t *testing.T) {
	data, err := JSON(newForm())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestDecodeJSON(t *testing.T) {
	f := newForm()
	body := `{"count": 7, "tag": ["p", "q"], "name": "n", "color": "red", "other": 1.5, "flag": true}`
	require.NoError(t, DecodeJSON([]byte(body), f))

	assert.Equal(t, int64(7), f.Count)
	assert.Equal(t, []string{"p", "q"}, f.Tags)
	assert.Equal(t, "n", f.Name)
	assert.Equal(t, colorRed, f.Color)
	assert.Equal(t, []string{"flag", "other"}, f.Unknown().Keys())

	v, ok := f.Get("other")
	require.True(t, ok)
	assert.Equal(t, json.Number("1.5"), v)
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		is   error
	}{
		{name: "null", body: "null", is: ErrNotObject},
		{name: "array", body: "[1, 2]"},
		{name: "bad field type", body: `{"count": "many"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeJSON([]byte(tt.body), newForm())
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want string
	}{
		{name: "json", body: []byte(`{"a": 1}`), want: "application/json"},
		{name: "text", body: []byte("hello world"), want: "text/plain; charset=utf-8"},
		{name: "png", body: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), want: "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.body))
			got, err := DetectReader(strings.NewReader(string(tt.body)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "text/csv", TypeOf("text/csv", []byte("a,b")))
	assert.Equal(t, "application/json", TypeOf("", []byte(`{"a": 1}`)))
	assert.Equal(t, "application/json", TypeOf(";;", []byte(`{"a": 1}`)))
}

func TestIsJSON(t *testing.T) {
	assert.True(t, IsJSON(JSONType))
	assert.True(t, IsJSON("application/problem+json"))
	assert.False(t, IsJSON(FormType))
	assert.False(t, IsJSON(""))
}
