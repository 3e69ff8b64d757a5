package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/GevorkovG/go-shortener-digest/config"
	"github.com/GevorkovG/go-shortener-digest/internal/app"
	"github.com/GevorkovG/go-shortener-digest/internal/shortener"
	"github.com/GevorkovG/go-shortener-digest/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedOpener отдаёт одно и то же приложение, чтобы команды видели общие данные.
func sharedOpener() Opener {
	a := app.NewApp(&config.AppConfig{})
	a.Storage = storage.NewInMemoryStorage()
	return func(context.Context) (*app.App, error) { return a, nil }
}

func execute(t *testing.T, open Opener, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(open)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCreateAndResolve(t *testing.T) {
	open := sharedOpener()
	path := shortener.Digest("https://example.com/page")

	out, _, err := execute(t, open, "create", "http://example.com/page")
	require.NoError(t, err)
	assert.Contains(t, out, "Path: "+path)
	assert.Contains(t, out, "Destination: https://example.com/page")

	out, stderr, err := execute(t, open, "resolve", path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page\n", out)
	assert.Empty(t, stderr)
}

func TestCreate_Encoded(t *testing.T) {
	out, _, err := execute(t, sharedOpener(), "create", "--encoded", "http%3A%2F%2Fexample.com%2Fa%20b")
	require.NoError(t, err)
	assert.Contains(t, out, "Destination: https://example.com/a b")

	_, _, err = execute(t, sharedOpener(), "create", "--encoded", "%zz")
	assert.ErrorIs(t, err, shortener.ErrDecode)
}

func TestCreate_NotHTTPS(t *testing.T) {
	_, _, err := execute(t, sharedOpener(), "create", "javascript:alert(1)")
	assert.ErrorIs(t, err, shortener.ErrNotHTTPS)
}

func TestResolve_NotFound(t *testing.T) {
	_, stderr, err := execute(t, sharedOpener(), "resolve", strings.Repeat("0", shortener.PathLength))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, stderr)

	_, stderr, err = execute(t, sharedOpener(), "resolve", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, stderr, "warning")
}

func TestOpenError(t *testing.T) {
	boom := errors.New("boom")
	open := func(context.Context) (*app.App, error) { return nil, boom }

	_, _, err := execute(t, open, "create", "https://example.com")
	assert.ErrorIs(t, err, boom)
}

func TestDigest(t *testing.T) {
	out, _, err := execute(t, sharedOpener(), "digest", "http://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, shortener.Digest("https://example.com/page")+"\n", out)

	_, _, err = execute(t, sharedOpener(), "digest", "ftp://x")
	assert.ErrorIs(t, err, shortener.ErrNotHTTPS)

	_, _, err = execute(t, sharedOpener(), "digest")
	assert.Error(t, err)
}
