package scrimage

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenDB(t *testing.T) {
	dir, err := ioutil.TempDir("", "scrimage")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewScreenDB(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer db.Close()

	b, err := db.Find("ABCD", "dither=false")
	assert.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, db.Add("ABCD", "dither=false", 0, []byte{1, 2, 3}))
	require.NoError(t, db.Add("ABCD", "dither=true", 3, []byte{4, 5, 6}))

	b, err = db.Find("ABCD", "dither=false")
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	require.NoError(t, db.Add("ABCD", "dither=false", 1, []byte{7}))

	b, err = db.Find("ABCD", "dither=false")
	assert.NoError(t, err)
	assert.Equal(t, []byte{7}, b)

	n, err := db.Length()
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOutputFilename(t *testing.T) {
	tables := []struct {
		file, ext, want string
	}{
		{"image.png", ".scr", "image.scr"},
		{"dir/photo.jpeg", ".scr", "dir/photo.scr"},
		{"screen.scr", ".png", "screen.png"},
		{"noext", ".scr", "noext.scr"},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, outputFilename(table.file, table.ext))
	}
}
