package adminapi

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// DefaultMediaFolderID resolves the id of the default media folder assigned
// to an entity, e.g. "product".
func DefaultMediaFolderID(ctx context.Context, client *Client, entity string) (string, error) {
	repo := NewRepository[map[string]any](client, "media_default_folder")

	criteria := NewCriteria()
	criteria.AddFilter(Equals("entity", entity))
	criteria.AddAssociation("folder")

	result, err := repo.Search(ctx, criteria)
	if err != nil {
		return "", err
	}

	first, ok := result.First()
	if !ok {
		return "", fmt.Errorf("no default media folder for entity %s", entity)
	}
	folder, ok := first["folder"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("default media folder for entity %s has no folder association", entity)
	}
	id, ok := folder["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("default media folder for entity %s has no id", entity)
	}
	return id, nil
}

// UploadMediaByURL creates a media record in the given folder and instructs
// the backend to fetch the file from the URL. Returns the new media id.
func UploadMediaByURL(ctx context.Context, client *Client, fileURL string, fileName string, mediaFolderID string) (string, error) {
	mediaID := NewID()

	mediaRepo := NewRepository[map[string]any](client, "media")
	payload := map[string]any{"id": mediaID}
	if mediaFolderID != "" {
		payload["mediaFolderId"] = mediaFolderID
	}
	if err := mediaRepo.Upsert(ctx, []map[string]any{payload}); err != nil {
		return "", err
	}

	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	name := strings.TrimSuffix(fileName, path.Ext(fileName))

	uploadPath := fmt.Sprintf("_action/media/%s/upload?extension=%s&fileName=%s",
		mediaID, url.QueryEscape(ext), url.QueryEscape(name))
	if _, err := client.Post(ctx, uploadPath, map[string]any{"url": fileURL}); err != nil {
		return "", err
	}

	return mediaID, nil
}
