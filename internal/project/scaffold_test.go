package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abestanis/APython-PyToApk/internal/diag"
	"github.com/Abestanis/APython-PyToApk/internal/formatargs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScaffoldData(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		appID string
	}{
		{"snake game", "SnakeGame", "org.example.snakegame"},
		{"my-tool_v2", "MyToolV2", "org.example.mytoolv2"},
		{"42", "42", "org.example.app42"},
		{"!!!", "App", "org.example.app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewScaffoldData("pytoapk", tt.name)
			assert.Equal(t, tt.tag, d.AppTag)
			assert.Equal(t, tt.appID, d.AppID)
			assert.Equal(t, tt.name, d.AppName)
		})
	}
}

func TestScaffoldLoadsAndValidates(t *testing.T) {
	dir := t.TempDir()
	data := NewScaffoldData("pytoapk", "Snake Game")
	data.TemplateGit = "https://example.com/skeleton.git"

	path, err := Scaffold(dir, data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pytoapk.yaml"), path)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Snake Game", p.Args[formatargs.AppName])
	assert.Equal(t, "SnakeGame", p.Args[formatargs.AppLogTag])
	assert.Equal(t, filepath.Join(dir, "src"), p.SourceDir)
	assert.Equal(t, "https://example.com/skeleton.git", p.TemplateGit)

	var log diag.Log
	res := formatargs.DefaultSchema().Validate(afero.NewOsFs(), p.Input(), &log)
	assert.True(t, res.OK, "errors: %v", log.Errors())
}

func TestScaffoldWithoutTemplateGit(t *testing.T) {
	dir := t.TempDir()
	path, err := Scaffold(dir, NewScaffoldData("pytoapk", "Demo"))
	require.NoError(t, err)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, p.TemplateGit)
}

func TestScaffoldRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "pytoapk.toml")
	require.NoError(t, os.WriteFile(existing, []byte("[android_app]\n"), 0644))

	_, err := Scaffold(dir, NewScaffoldData("pytoapk", "Demo"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExists))
	assert.NoFileExists(t, filepath.Join(dir, "pytoapk.yaml"))
}
