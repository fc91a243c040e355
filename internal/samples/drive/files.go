package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/wsamples/internal/connectors/google"
)

// Google Workspace MIME types.
const (
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeShortcut     = "application/vnd.google-apps.shortcut"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypePDF          = "application/pdf"
)

// AppDataFolder is the alias of the hidden application data folder.
const AppDataFolder = "appDataFolder"

// MaxDownloadSize caps downloads and exports (10MB, Drive's export limit).
const MaxDownloadSize = 10 * 1024 * 1024

// ErrTooLarge is returned when a download or export exceeds MaxDownloadSize.
var ErrTooLarge = errors.New("content exceeds download limit")

// File is the subset of file metadata the samples print.
type File struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	MimeType     string   `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	Parents      []string `json:"parents,omitempty" yaml:"parents,omitempty"`
	ModifiedTime string   `json:"modifiedTime,omitempty" yaml:"modifiedTime,omitempty"`
}

func fromAPI(f *drive.File) File {
	return File{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Parents:      f.Parents,
		ModifiedTime: f.ModifiedTime,
	}
}

// Quickstart lists the names and IDs of the first 10 files the user can access.
func Quickstart(ctx context.Context, svc *drive.Service) ([]File, error) {
	list, err := svc.Files.List().
		PageSize(10).
		Fields("nextPageToken, files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", google.WrapError(err))
	}

	files := make([]File, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, fromAPI(f))
	}
	return files, nil
}

// UploadBasic uploads a local file to the root of My Drive and returns its ID.
func UploadBasic(ctx context.Context, svc *drive.Service, path, mimeType string) (string, error) {
	return upload(ctx, svc, path, &drive.File{Name: filepath.Base(path)}, mimeType)
}

// UploadToFolder uploads a local file into folderID and returns its ID.
func UploadToFolder(ctx context.Context, svc *drive.Service, path, folderID, mimeType string) (string, error) {
	meta := &drive.File{
		Name:    filepath.Base(path),
		Parents: []string{folderID},
	}
	return upload(ctx, svc, path, meta, mimeType)
}

// UploadWithConversion uploads a CSV file and converts it to a Google Sheet.
func UploadWithConversion(ctx context.Context, svc *drive.Service, path, name string) (string, error) {
	if name == "" {
		name = trimExt(filepath.Base(path))
	}
	meta := &drive.File{
		Name:     name,
		MimeType: MimeTypeGoogleSheet,
	}
	return upload(ctx, svc, path, meta, "text/csv")
}

// UploadAppData stores a local file in the application data folder.
func UploadAppData(ctx context.Context, svc *drive.Service, path string) (string, error) {
	meta := &drive.File{
		Name:    filepath.Base(path),
		Parents: []string{AppDataFolder},
	}
	return upload(ctx, svc, path, meta, "application/json")
}

func upload(ctx context.Context, svc *drive.Service, path string, meta *drive.File, mimeType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var opts []googleapi.MediaOption
	if mimeType != "" {
		opts = append(opts, googleapi.ContentType(mimeType))
	}

	created, err := svc.Files.Create(meta).
		Media(f, opts...).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, google.WrapError(err))
	}
	return created.Id, nil
}

// ExportPDF exports a Google Workspace document as PDF bytes.
func ExportPDF(ctx context.Context, svc *drive.Service, fileID string) ([]byte, error) {
	resp, err := svc.Files.Export(fileID, MimeTypePDF).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("export file: %w", google.WrapError(err))
	}
	defer resp.Body.Close()

	data, err := readCapped(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return data, nil
}

// DownloadFile downloads the content of a binary file.
func DownloadFile(ctx context.Context, svc *drive.Service, fileID string) ([]byte, error) {
	resp, err := svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download file: %w", google.WrapError(err))
	}
	defer resp.Body.Close()

	data, err := readCapped(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}
	return data, nil
}

// CreateFolder creates a folder and returns its ID.
func CreateFolder(ctx context.Context, svc *drive.Service, name string) (string, error) {
	folder, err := svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: MimeTypeFolder,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder: %w", google.WrapError(err))
	}
	return folder.Id, nil
}

// MoveFileToFolder moves fileID out of its current parents into folderID
// and returns the new parent list.
func MoveFileToFolder(ctx context.Context, svc *drive.Service, fileID, folderID string) ([]string, error) {
	current, err := svc.Files.Get(fileID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get parents: %w", google.WrapError(err))
	}

	moved, err := svc.Files.Update(fileID, &drive.File{}).
		AddParents(folderID).
		RemoveParents(strings.Join(current.Parents, ",")).
		Fields("id, parents").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("move file: %w", google.WrapError(err))
	}
	return moved.Parents, nil
}

// SearchFiles returns every file matching a Drive query such as
// "mimeType='image/jpeg'".
func SearchFiles(ctx context.Context, svc *drive.Service, limiter *google.RateLimiter, query string) ([]File, error) {
	var files []File
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		page, err := svc.Files.List().
			Q(query).
			Spaces("drive").
			Fields("nextPageToken, files(id, name, mimeType)").
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return "", err
		}
		for _, f := range page.Files {
			files = append(files, fromAPI(f))
		}
		return page.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("search files: %w", err)
	}
	return files, nil
}

// TouchFile sets a file's modified time and returns the stored value.
func TouchFile(ctx context.Context, svc *drive.Service, fileID string, at time.Time) (string, error) {
	updated, err := svc.Files.Update(fileID, &drive.File{
		ModifiedTime: at.UTC().Format(time.RFC3339),
	}).Fields("id, modifiedTime").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("touch file: %w", google.WrapError(err))
	}
	return updated.ModifiedTime, nil
}

// CreateShortcut creates a shortcut to targetID and returns the shortcut's ID.
func CreateShortcut(ctx context.Context, svc *drive.Service, targetID, name string) (string, error) {
	shortcut, err := svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: MimeTypeShortcut,
		ShortcutDetails: &drive.FileShortcutDetails{
			TargetId: targetID,
		},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create shortcut: %w", google.WrapError(err))
	}
	return shortcut.Id, nil
}

// ListAppData lists the files in the application data folder.
func ListAppData(ctx context.Context, svc *drive.Service, limiter *google.RateLimiter) ([]File, error) {
	var files []File
	err := google.Paginate(ctx, limiter, func(pageToken string) (string, error) {
		page, err := svc.Files.List().
			Spaces(AppDataFolder).
			Fields("nextPageToken, files(id, name)").
			PageSize(100).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return "", err
		}
		for _, f := range page.Files {
			files = append(files, fromAPI(f))
		}
		return page.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list app data: %w", err)
	}
	return files, nil
}

// FetchAppDataFolder returns the ID of the application data folder.
func FetchAppDataFolder(ctx context.Context, svc *drive.Service) (string, error) {
	folder, err := svc.Files.Get(AppDataFolder).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get app data folder: %w", google.WrapError(err))
	}
	return folder.Id, nil
}

// readCapped reads r fully, failing with ErrTooLarge past MaxDownloadSize.
func readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDownloadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxDownloadSize)
	}
	return data, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
