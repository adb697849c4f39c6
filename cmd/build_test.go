package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	c.SetContext(context.Background())
	return c, &out
}

func TestRunBuild(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/site/_pages/about.md", []byte("Title: About\n\nhi\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/site/_templates/page.plush.html", []byte(`<%= item.Get("Title") %>`), 0o644))

	c, out := testCommand()
	require.NoError(t, runBuild(c, fs, "/site", "", "/public"))

	data, err := afero.ReadFile(fs, "/public/about.html")
	require.NoError(t, err)
	assert.Equal(t, "About", string(data))
	assert.Equal(t, "Built 1 pages and 0 posts into /public\n", out.String())
}

func TestRunBuildConfigError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/site/site.yaml", []byte("markdown:\n  engine: nope\n"), 0o644))

	c, _ := testCommand()
	assert.Error(t, runBuild(c, fs, "/site", "", ""))
}
