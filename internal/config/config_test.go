package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumbdrive/internal/config"
)

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("THUMBNAIL_SIZE", "128")
	t.Setenv("DYNAMODB_TABLE", "thumbnails")
	t.Setenv("REGION_NAME", "us-east-1")

	cfg, err := config.NewConfig("testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Thumbnail.Size)
	assert.True(t, cfg.Thumbnail.PublicRead)
	assert.Equal(t, "thumbnails", cfg.Store.Table)
	assert.Equal(t, "us-east-1", cfg.Store.Region)
	assert.Equal(t, "2525", cfg.Server.Port)
}

func TestNewConfig_MissingThumbnailSize(t *testing.T) {
	t.Setenv("DYNAMODB_TABLE", "thumbnails")
	t.Setenv("REGION_NAME", "us-east-1")

	_, err := config.NewConfig("testdata/absent.env")
	require.Error(t, err)
}

func TestNewConfig_MissingTable(t *testing.T) {
	t.Setenv("THUMBNAIL_SIZE", "128")
	t.Setenv("REGION_NAME", "us-east-1")

	_, err := config.NewConfig("testdata/absent.env")
	require.Error(t, err)
}

func TestNewConfig_RejectsNonPositiveSize(t *testing.T) {
	t.Setenv("THUMBNAIL_SIZE", "-5")
	t.Setenv("DYNAMODB_TABLE", "thumbnails")
	t.Setenv("REGION_NAME", "us-east-1")

	_, err := config.NewConfig("testdata/absent.env")
	require.Error(t, err)
}

func TestNewConfig_PublicReadOverride(t *testing.T) {
	t.Setenv("THUMBNAIL_SIZE", "128")
	t.Setenv("DYNAMODB_TABLE", "thumbnails")
	t.Setenv("REGION_NAME", "us-east-1")
	t.Setenv("THUMBNAIL_PUBLIC_READ", "false")

	cfg, err := config.NewConfig("testdata/absent.env")
	require.NoError(t, err)
	assert.False(t, cfg.Thumbnail.PublicRead)
}
