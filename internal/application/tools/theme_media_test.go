package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeConfigGetBySalesChannel(t *testing.T) {
	client, fake := newToolClient(t)
	fake.searches["/api/search/theme"] = `{
		"total": 1,
		"data": [{"id": "theme-1", "name": "Default", "configValues": {"sw-color-brand-primary": {"value": "#ff0000"}}}]
	}`

	result, err := themeConfigGet(context.Background(), client, map[string]any{"salesChannelId": "sc-1"})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var theme map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &theme))
	assert.Equal(t, "theme-1", theme["id"])
}

func TestThemeConfigGetWithoutTheme(t *testing.T) {
	client, _ := newToolClient(t)

	result, err := themeConfigGet(context.Background(), client, map[string]any{"salesChannelId": "sc-1"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "No theme found")
}

func TestThemeConfigChangePatchesWithDefaults(t *testing.T) {
	client, fake := newToolClient(t)

	result, err := themeConfigChange(context.Background(), client, map[string]any{
		"themeId":      "theme-1",
		"primaryColor": "#112233",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Changed the theme color")

	patches := fake.recorded("/api/_action/theme/theme-1")
	require.Len(t, patches, 1)
	assert.Equal(t, http.MethodPatch, patches[0].Method)
	assert.Contains(t, patches[0].Query, "reset=true")
	assert.Contains(t, patches[0].Query, "validate=true")

	var body struct {
		Config map[string]map[string]any `json:"config"`
	}
	require.NoError(t, json.Unmarshal(patches[0].Body, &body))
	assert.Equal(t, "#112233", body.Config["sw-color-brand-primary"]["value"])
	assert.Equal(t, "#7a9ccd", body.Config["sw-color-brand-secondary"]["value"])
	assert.Equal(t, "#ffffff", body.Config["sw-background-color"]["value"])
}

func TestUploadMediaByURLFlow(t *testing.T) {
	client, fake := newToolClient(t)
	fake.searches["/api/search/media_default_folder"] = `{
		"total": 1,
		"data": [{"id": "mdf-1", "entity": "product", "folder": {"id": "folder-1"}}]
	}`

	result, err := uploadMediaByURL(context.Background(), client, map[string]any{
		"url":      "https://example.com/picture.jpg",
		"fileName": "picture.jpg",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var report map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
	mediaID := report["mediaId"]
	require.NotEmpty(t, mediaID)

	// The media record is created in the resolved folder before the upload.
	syncs := fake.recorded("/api/_action/sync")
	require.Len(t, syncs, 1)
	var batch map[string]syncStep
	require.NoError(t, json.Unmarshal(syncs[0].Body, &batch))
	payload := batch["media-upsert"].Payload[0]
	assert.Equal(t, mediaID, payload["id"])
	assert.Equal(t, "folder-1", payload["mediaFolderId"])

	uploads := fake.recorded("/api/_action/media/" + mediaID + "/upload")
	require.Len(t, uploads, 1)
	assert.Contains(t, uploads[0].Query, "extension=jpg")
	assert.Contains(t, uploads[0].Query, "fileName=picture")
	assert.True(t, strings.Contains(string(uploads[0].Body), "https://example.com/picture.jpg"))
}
