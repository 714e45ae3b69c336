package checks

import (
	"context"
	"testing"

	"immich-album-sync/core/target"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckDestination(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/album/a1.png", []byte("1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/album/a1.jpg", []byte("1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/album/a2.png", []byte("2"), 0o644))
	require.NoError(t, fs.MkdirAll("/album/thumbs", 0o755))

	report := CheckDestination(context.Background(), target.NewLocal(fs, "/album"))

	assert.True(t, report.Readable)
	assert.Equal(t, 3, report.Files)
	assert.Equal(t, []string{"thumbs"}, report.NonRegular)
	assert.Equal(t, map[string][]string{"a1": {"a1.jpg", "a1.png"}}, report.DuplicateStems)
}

func TestCheckDestination_MissingAndFix(t *testing.T) {
	fs := afero.NewMemMapFs()
	dest := target.NewLocal(fs, "/album")

	report := CheckDestination(context.Background(), dest)
	assert.False(t, report.Readable)
	assert.NotEmpty(t, report.Error)

	require.NoError(t, FixDestination(context.Background(), dest, zap.NewNop()))
	assert.True(t, CheckDestination(context.Background(), dest).Readable)
}
