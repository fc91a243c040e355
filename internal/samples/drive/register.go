package drive

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/wsamples/internal/catalog"
	"github.com/custodia-labs/wsamples/internal/connectors/google"
	"github.com/custodia-labs/wsamples/internal/core/domain"
)

// Download is the result of a sample that writes content to disk.
type Download struct {
	Path  string `json:"path" yaml:"path"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

// Register adds the Drive samples to r.
func Register(r *catalog.Registry) {
	r.MustRegister(
		entry("drive.quickstart", "List the names and IDs of the first 10 files",
			[]string{google.ScopeDriveMetadataReadonly}, nil,
			func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				return Quickstart(ctx, svc)
			}),
		entry("drive.upload-basic", "Upload a local file to My Drive",
			[]string{google.ScopeDriveFile},
			[]domain.ArgSpec{
				{Name: "path", Description: "local file to upload", Required: true},
				{Name: "mime-type", Description: "content type of the upload"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := UploadBasic(ctx, svc, env.Path(args.Get("path")), args.Get("mime-type"))
				return idResult(id), err
			}),
		entry("drive.upload-to-folder", "Upload a local file into a folder",
			[]string{google.ScopeDriveFile},
			[]domain.ArgSpec{
				{Name: "path", Description: "local file to upload", Required: true},
				{Name: "folder-id", Description: "destination folder", Required: true},
				{Name: "mime-type", Description: "content type of the upload"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := UploadToFolder(ctx, svc, env.Path(args.Get("path")), args.Get("folder-id"), args.Get("mime-type"))
				return idResult(id), err
			}),
		entry("drive.upload-with-conversion", "Upload a CSV file as a Google Sheet",
			[]string{google.ScopeDriveFile},
			[]domain.ArgSpec{
				{Name: "path", Description: "local CSV file", Required: true},
				{Name: "name", Description: "title of the new sheet"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := UploadWithConversion(ctx, svc, env.Path(args.Get("path")), args.Get("name"))
				return idResult(id), err
			}),
		entry("drive.export-pdf", "Export a Google Doc as PDF",
			[]string{google.ScopeDriveReadonly},
			[]domain.ArgSpec{
				{Name: "file-id", Description: "document to export", Required: true},
				{Name: "out", Description: "where to write the PDF", Default: "export.pdf"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				data, err := ExportPDF(ctx, svc, args.Get("file-id"))
				if err != nil {
					return nil, err
				}
				return writeFile(env.Path(args.Get("out")), data)
			}),
		entry("drive.download-file", "Download the content of a file",
			[]string{google.ScopeDriveReadonly},
			[]domain.ArgSpec{
				{Name: "file-id", Description: "file to download", Required: true},
				{Name: "out", Description: "where to write the content", Default: "download.bin"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				data, err := DownloadFile(ctx, svc, args.Get("file-id"))
				if err != nil {
					return nil, err
				}
				return writeFile(env.Path(args.Get("out")), data)
			}),
		entry("drive.create-folder", "Create a folder",
			[]string{google.ScopeDriveFile},
			[]domain.ArgSpec{{Name: "name", Description: "folder name", Default: "Invoices"}},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := CreateFolder(ctx, svc, args.Get("name"))
				return idResult(id), err
			}),
		entry("drive.move-file-to-folder", "Move a file into another folder",
			[]string{google.ScopeDrive},
			[]domain.ArgSpec{
				{Name: "file-id", Description: "file to move", Required: true},
				{Name: "folder-id", Description: "destination folder", Required: true},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				return MoveFileToFolder(ctx, svc, args.Get("file-id"), args.Get("folder-id"))
			}),
		entry("drive.search-files", "Search files with a Drive query",
			[]string{google.ScopeDriveMetadataReadonly},
			[]domain.ArgSpec{{Name: "query", Description: "Drive search query", Default: "mimeType='image/jpeg'"}},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				return SearchFiles(ctx, svc, env.Clients.Limiter(google.ServiceDrive), args.Get("query"))
			}),
		entry("drive.share-file", "Share a file with a user and a domain",
			[]string{google.ScopeDrive},
			[]domain.ArgSpec{
				{Name: "file-id", Description: "file to share", Required: true},
				{Name: "user", Description: "email granted write access"},
				{Name: "domain", Description: "domain granted read access"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				if args.Get("user") == "" && args.Get("domain") == "" {
					return nil, fmt.Errorf("%w: user or domain", domain.ErrMissingArgument)
				}
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				return ShareFile(ctx, svc, args.Get("file-id"), args.Get("user"), args.Get("domain"))
			}),
		entry("drive.touch-file", "Set a file's modified time to now",
			[]string{google.ScopeDriveFile},
			[]domain.ArgSpec{{Name: "file-id", Description: "file to touch", Required: true}},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				modified, err := TouchFile(ctx, svc, args.Get("file-id"), env.Time())
				if err != nil {
					return nil, err
				}
				return map[string]string{"modifiedTime": modified}, nil
			}),
		entry("drive.create-shared-drive", "Create a shared drive",
			[]string{google.ScopeDrive},
			[]domain.ArgSpec{{Name: "name", Description: "shared drive name", Default: "Project resources"}},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := CreateSharedDrive(ctx, svc, args.Get("name"))
				return idResult(id), err
			}),
		entry("drive.recover-shared-drives", "Add an organizer to shared drives that have none",
			[]string{google.ScopeDrive},
			[]domain.ArgSpec{{Name: "user", Description: "email of the new organizer", Required: true}},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				return RecoverSharedDrives(ctx, svc, env.Clients.Limiter(google.ServiceDrive), args.Get("user"))
			}),
		entry("drive.fetch-start-page-token", "Get the current change log token",
			[]string{google.ScopeDriveReadonly}, nil,
			func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				tok, err := FetchStartPageToken(ctx, svc)
				if err != nil {
					return nil, err
				}
				return map[string]string{"startPageToken": tok}, nil
			}),
		entry("drive.fetch-changes", "List changes since a saved page token",
			[]string{google.ScopeDriveReadonly},
			[]domain.ArgSpec{{Name: "token", Description: "saved start page token", Required: true}},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				return FetchChanges(ctx, svc, env.Clients.Limiter(google.ServiceDrive), args.Get("token"))
			}),
		entry("drive.upload-app-data", "Store a file in the application data folder",
			[]string{google.ScopeDriveAppData},
			[]domain.ArgSpec{{Name: "path", Description: "local file to store", Required: true}},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := UploadAppData(ctx, svc, env.Path(args.Get("path")))
				return idResult(id), err
			}),
		entry("drive.list-app-data", "List files in the application data folder",
			[]string{google.ScopeDriveAppData}, nil,
			func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				return ListAppData(ctx, svc, env.Clients.Limiter(google.ServiceDrive))
			}),
		entry("drive.fetch-app-data-folder", "Get the ID of the application data folder",
			[]string{google.ScopeDriveAppData}, nil,
			func(ctx context.Context, env catalog.Env, _ domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := FetchAppDataFolder(ctx, svc)
				return idResult(id), err
			}),
		entry("drive.create-shortcut", "Create a shortcut to a file",
			[]string{google.ScopeDriveFile},
			[]domain.ArgSpec{
				{Name: "target-id", Description: "file the shortcut points to", Required: true},
				{Name: "name", Description: "shortcut name", Default: "Shortcut"},
			},
			func(ctx context.Context, env catalog.Env, args domain.Args) (any, error) {
				svc, err := env.Clients.Drive(ctx)
				if err != nil {
					return nil, err
				}
				id, err := CreateShortcut(ctx, svc, args.Get("target-id"), args.Get("name"))
				return idResult(id), err
			}),
	)
}

func entry(name, summary string, scopes []string, args []domain.ArgSpec, run catalog.RunFunc) catalog.Entry {
	return catalog.Entry{
		Sample: domain.Sample{
			Name:    name,
			API:     domain.APIDrive,
			Summary: summary,
			Scopes:  scopes,
			Args:    args,
			Auth:    domain.AuthAny,
		},
		Run: run,
	}
}

func idResult(id string) map[string]string {
	if id == "" {
		return nil
	}
	return map[string]string{"id": id}
}

func writeFile(path string, data []byte) (*Download, error) {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &Download{Path: path, Bytes: len(data)}, nil
}

