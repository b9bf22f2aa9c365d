package adapter

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "depmap.dev/pkg/depmap/internal/model"
)

const generatedExtension = `/* Generated by Cython 0.29.23 */

/* BEGIN: Cython Metadata
{
    "distutils": {
        "language": "c++",
        "sources": ["src/foo/foo_ext.pyx"]
    },
    "module_name": "foo.foo_ext"
}
END: Cython Metadata */

static const char *__pyx_f[] = {
  "src/foo/foo_ext.pyx",
};

  /* "src/foo/foo_ext.pyx":12
 *     def __cinit__(self, int baz=0):
 *         foo_initialize(&self._foo, baz)             # <<<<<<<<<<<<<<
 */
  /* "src/foo/foo_ext.pyx":12
 */
  /* "foo/helpers.pxi":3
 */
  /* "src/foo/foo_ext.pyx":20
 */
  /* "foo/helpers.pxi":3
 */
`

func TestCythonSourceAdapter_Parse(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeMemFile(t, fsys, "/build/foo_ext.cpp", generatedExtension)

	adapter := NewGeneratedSourceAdapter(fsys)

	source, ok, err := adapter.Parse(context.Background(), "/build/foo_ext.cpp")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, m.Path("/build/foo_ext.cpp"), source.File)
	assert.Equal(t, "foo.foo_ext", source.Module)
	assert.Equal(t, []m.DependencyReference{
		{MainFile: "/build/foo_ext.cpp", Reference: "src/foo/foo_ext.pyx", RelativeHint: true, Lines: 2},
		{MainFile: "/build/foo_ext.cpp", Reference: "foo/helpers.pxi", RelativeHint: true, Lines: 1},
	}, source.References)
}

func TestCythonSourceAdapter_Parse_SkipsHandWrittenSources(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeMemFile(t, fsys, "/src/foo_impl.c", "#include \"foo.h\"\n  /* \"looks/like.pyx\":1\n")

	adapter := NewGeneratedSourceAdapter(fsys)

	_, ok, err := adapter.Parse(context.Background(), "/src/foo_impl.c")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCythonSourceAdapter_Parse_MalformedMetadata(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeMemFile(t, fsys, "/build/ext.c", "/* Generated by Cython 3.0.0 */\n/* BEGIN: Cython Metadata\n{not json\nEND: Cython Metadata */\n  /* \"ext.pyx\":1\n")

	adapter := NewGeneratedSourceAdapter(fsys)

	source, ok, err := adapter.Parse(context.Background(), "/build/ext.c")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, source.Module)
	require.Len(t, source.References, 1)
	assert.Equal(t, m.Path("ext.pyx"), source.References[0].Reference)
}

func TestCythonSourceAdapter_Parse_MissingFile(t *testing.T) {
	adapter := NewGeneratedSourceAdapter(afero.NewMemMapFs())

	_, _, err := adapter.Parse(context.Background(), "/nope.c")
	require.Error(t, err)
}

func TestCythonSourceAdapter_Parse_ContextCancellation(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeMemFile(t, fsys, "/build/foo_ext.cpp", generatedExtension)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewGeneratedSourceAdapter(fsys).Parse(ctx, "/build/foo_ext.cpp")
	require.ErrorIs(t, err, context.Canceled)
}
