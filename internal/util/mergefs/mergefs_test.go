package mergefs

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeFS(t *testing.T) {
	over := fstest.MapFS{"css/style.css": {Data: []byte("over")}}
	base := fstest.MapFS{
		"css/style.css": {Data: []byte("base")},
		"js/app.js":     {Data: []byte("app")},
	}
	m := New(over, base)

	data, err := fs.ReadFile(m, "css/style.css")
	require.NoError(t, err)
	assert.Equal(t, "over", string(data))

	data, err = fs.ReadFile(m, "js/app.js")
	require.NoError(t, err)
	assert.Equal(t, "app", string(data))

	_, err = m.Open("missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
