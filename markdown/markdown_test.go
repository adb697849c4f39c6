package markdown

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnginesRenderHeading(t *testing.T) {
	for _, engine := range []string{"", EngineGoMarkdown, EngineGoldmark} {
		t.Run("engine="+engine, func(t *testing.T) {
			md, err := New(Options{Engine: engine, UnsafeHTML: true})
			require.NoError(t, err)

			out, err := md.Transform([]byte("# Hello\n\nsome *text*\n"))
			require.NoError(t, err)
			assert.Contains(t, string(out), `<h1 id="hello">Hello</h1>`)
			assert.Contains(t, string(out), "<em>text</em>")
		})
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	md, err := New(Options{})
	require.NoError(t, err)

	src := []byte("## Same\n\n- a\n- b\n")
	first, err := md.Transform(src)
	require.NoError(t, err)
	second, err := md.Transform(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGoldmarkRawHTML(t *testing.T) {
	src := []byte("<div>raw</div>\n")

	out, err := NewGoldmark(Options{UnsafeHTML: true}).Transform(src)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<div>raw</div>")

	out, err = NewGoldmark(Options{}).Transform(src)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<div>raw</div>")
}

func TestUnknownEngine(t *testing.T) {
	_, err := New(Options{Engine: "blackfriday"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEngine))
}
