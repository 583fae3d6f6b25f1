package filler

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProperties(t *testing.T) {
	assert.Equal(t, `sdk.dir=C\:\\sdk`, LocalProperties(`C:\sdk`))
	assert.Equal(t, `sdk.dir=/opt/android-sdk`, LocalProperties("/opt/android-sdk"))
	assert.Equal(t, `sdk.dir=D\:\\a b\\c\:d`, LocalProperties(`D:\a b\c:d`))
}

func TestWriteLocalPropertiesReplaces(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/local.properties", []byte("sdk.dir=/old/very/long/path\n"), 0644))

	require.NoError(t, WriteLocalProperties(fs, "/app/local.properties", "/sdk"))
	data, err := afero.ReadFile(fs, "/app/local.properties")
	require.NoError(t, err)
	assert.Equal(t, "sdk.dir=/sdk", string(data))
}
