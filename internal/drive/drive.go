// Package drive fetches upload files from Google Drive and turns them
// into file artifacts for triage. The source is deliberately lenient: a
// malformed link, an unsupported file, or a failed download degrades to
// an empty or partial artifact list with logged warnings, and the
// pipeline decides what an empty batch means.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/facultymetrics/dossier/internal/triage"
)

const (
	mimeGoogleDoc = "application/vnd.google-apps.document"
	mimePDF       = "application/pdf"

	exportMimeText = "text/plain"

	// maxDownloadSize bounds a single file download (20MB).
	maxDownloadSize = 20 * 1024 * 1024
)

// supportedMimes are the file types fetched from folders. Google Docs
// are exported as plain text; the rest are downloaded raw.
var supportedMimes = []string{
	mimeGoogleDoc,
	mimePDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
	"image/jpeg",
	"image/png",
	"image/tiff",
	"image/gif",
	"image/bmp",
}

// TextExtractor recovers text from binary document bytes. The OCR
// engine behind it is an external service; a nil extractor reads all
// binary documents as empty text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Source fetches one upload's files from Google Drive.
type Source struct {
	svc    *drive.Service
	ocr    TextExtractor
	logger *slog.Logger
}

// New creates a Source from finalized configuration. The extractor may
// be nil.
func New(ctx context.Context, cfg *Config, ocr TextExtractor, logger *slog.Logger) (*Source, error) {
	svc, err := drive.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Source{
		svc:    svc,
		ocr:    ocr,
		logger: logger.With("system", "drive"),
	}, nil
}

// ParseLink extracts the file or folder id from a Drive share link.
func ParseLink(link string) (id string, folder bool, err error) {
	if !strings.Contains(link, "drive.google.com") {
		return "", false, fmt.Errorf("not a google drive link: %q", link)
	}

	cut := func(s, sep string) (string, bool) {
		_, after, found := strings.Cut(s, sep)
		if !found {
			return "", false
		}
		after, _, _ = strings.Cut(after, "?")
		after, _, _ = strings.Cut(after, "&")
		after, _, _ = strings.Cut(after, "/")
		return after, after != ""
	}

	if id, ok := cut(link, "/folders/"); ok {
		return id, true, nil
	}
	if id, ok := cut(link, "/file/d/"); ok {
		return id, false, nil
	}
	if id, ok := cut(link, "/d/"); ok {
		return id, false, nil
	}
	if id, ok := cut(link, "id="); ok {
		return id, false, nil
	}
	return "", false, fmt.Errorf("unsupported google drive link format: %q", link)
}

// Fetch resolves a share link into file artifacts, one per supported
// file. Returns an empty list for an unusable link or an empty folder.
func (s *Source) Fetch(ctx context.Context, link string) []triage.FileArtifact {
	id, folder, err := ParseLink(link)
	if err != nil {
		s.logger.Warn("could not parse drive link", "error", err)
		return nil
	}

	if folder {
		return s.fetchFolder(ctx, id)
	}
	artifact, ok := s.fetchFile(ctx, id)
	if !ok {
		return nil
	}
	return []triage.FileArtifact{artifact}
}

func (s *Source) fetchFolder(ctx context.Context, folderID string) []triage.FileArtifact {
	var conditions []string
	for _, mime := range supportedMimes {
		conditions = append(conditions, fmt.Sprintf("mimeType = '%s'", mime))
	}
	query := fmt.Sprintf("'%s' in parents and (%s) and trashed = false",
		folderID, strings.Join(conditions, " or "))

	list, err := s.svc.Files.List().
		Q(query).
		Fields("files(id, name, mimeType)").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Warn("drive folder listing failed", "folder_id", folderID, "error", err)
		return nil
	}

	var artifacts []triage.FileArtifact
	for _, file := range list.Files {
		artifact, ok := s.fetchFileMeta(ctx, file.Id, file.Name, file.MimeType)
		if ok {
			artifacts = append(artifacts, artifact)
		}
	}

	s.logger.Info("drive folder fetched",
		"folder_id", folderID,
		"listed", len(list.Files),
		"fetched", len(artifacts),
	)
	return artifacts
}

func (s *Source) fetchFile(ctx context.Context, fileID string) (triage.FileArtifact, bool) {
	meta, err := s.svc.Files.Get(fileID).Fields("name, mimeType").Context(ctx).Do()
	if err != nil {
		s.logger.Warn("drive file metadata lookup failed", "file_id", fileID, "error", err)
		return triage.FileArtifact{}, false
	}
	if !slices.Contains(supportedMimes, meta.MimeType) {
		s.logger.Warn("unsupported file type", "file_id", fileID, "mime_type", meta.MimeType)
		return triage.FileArtifact{}, false
	}
	return s.fetchFileMeta(ctx, fileID, meta.Name, meta.MimeType)
}

func (s *Source) fetchFileMeta(ctx context.Context, fileID, name, mimeType string) (triage.FileArtifact, bool) {
	artifact := triage.FileArtifact{
		FileName: name,
		FileID:   fileID,
	}

	if mimeType == mimeGoogleDoc {
		text, err := s.export(ctx, fileID, exportMimeText)
		if err != nil {
			s.logger.Warn("google doc export failed", "file_id", fileID, "error", err)
			return triage.FileArtifact{}, false
		}
		artifact.Text = text
		return artifact, true
	}

	data, err := s.download(ctx, fileID)
	if err != nil {
		s.logger.Warn("drive download failed", "file_id", fileID, "error", err)
		return triage.FileArtifact{}, false
	}

	switch {
	case mimeType == mimePDF:
		count, err := api.PageCount(bytes.NewReader(data), nil)
		if err != nil {
			s.logger.Warn("pdf page count failed", "file_id", fileID, "error", err)
		} else {
			artifact.PageCount = count
		}
	case strings.HasPrefix(mimeType, "image/"):
		artifact.PageCount = 1
	}

	artifact.Text = s.extractText(ctx, fileID, data, mimeType)
	return artifact, true
}

// extractText delegates binary text recovery to the external OCR
// engine. No engine, or an engine failure, reads as empty text.
func (s *Source) extractText(ctx context.Context, fileID string, data []byte, mimeType string) string {
	if s.ocr == nil {
		return ""
	}
	text, err := s.ocr.ExtractText(ctx, data, mimeType)
	if err != nil {
		s.logger.Warn("text extraction failed", "file_id", fileID, "error", err)
		return ""
	}
	return text
}

func (s *Source) download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := s.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
}

func (s *Source) export(ctx context.Context, fileID, mimeType string) (string, error) {
	resp, err := s.svc.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
