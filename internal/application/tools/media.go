package tools

import (
	"context"

	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

func registerMediaTools(s *server.MCPServer, resolve ClientResolver, logger zerolog.Logger) {
	s.AddTool(mcp.NewTool("upload_media_by_url",
		mcp.WithDescription("Upload a media file by URL, the created media can be assigned to products afterwards"),
		mcp.WithString("url", mcp.Required(), mcp.Description("The publicly reachable URL of the file to upload")),
		mcp.WithString("fileName", mcp.Required(), mcp.Description("The file name without extension the media should be stored as")),
	), handle("upload_media_by_url", resolve, logger, uploadMediaByURL))
}

func uploadMediaByURL(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	fileURL, err := requireString(args, "url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fileName, err := requireString(args, "fileName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folderID, err := adminapi.DefaultMediaFolderID(ctx, client, "product")
	if err != nil {
		return serializeError("Error resolving media folder: ", err), nil
	}

	mediaID, err := adminapi.UploadMediaByURL(ctx, client, fileURL, fileName, folderID)
	if err != nil {
		return serializeError("Error uploading media: ", err), nil
	}

	return serializedResult(map[string]any{"mediaId": mediaID})
}
