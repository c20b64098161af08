// Package files provides file system operations for feedcli runs.
//
// Discovery walks directories for files with a given extension. Extractor
// unpacks a zip archive into a temporary Workspace and lists its delimited
// members; the workspace is removed by Workspace.Close.
//
// Example usage:
//
//	ws, err := files.NewExtractor(".csv", logger).Extract(ctx, "feed.zip")
//	if err != nil {
//	    return err
//	}
//	defer ws.Close()
//
//	members, err := ws.Members()
package files
