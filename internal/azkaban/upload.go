package azkaban

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/shaiso/azkaban-submitter/internal/domain"
)

// Uploader загружает zip-архив проекта (ajax=upload).
type Uploader struct {
	endpoint  Endpoint
	transport Transport
	logger    *slog.Logger
}

// NewUploader создаёт Uploader.
func NewUploader(endpoint Endpoint, t Transport, logger *slog.Logger) *Uploader {
	return &Uploader{endpoint: endpoint, transport: t, logger: logger}
}

// UploadFile загружает zip-файл по пути path в проект.
//
// Ошибки, включая ошибку чтения файла, возвращаются в поле error результата.
func (u *Uploader) UploadFile(ctx context.Context, session domain.Session, project, path string) *domain.UploaderResult {
	f, err := os.Open(path)
	if err != nil {
		return domain.NewUploaderFailure(fmt.Sprintf("open artifact: %v", err))
	}
	defer f.Close()

	return u.Upload(ctx, session, project, filepath.Base(path), f)
}

// Upload загружает архив из r под именем filename.
// Тело запроса целиком собирается в памяти.
func (u *Uploader) Upload(ctx context.Context, session domain.Session, project, filename string, r io.Reader) *domain.UploaderResult {
	if session.IsZero() {
		return domain.NewUploaderFailure(ErrNoSession.Error())
	}

	body, contentType, err := encodeUpload(session, project, filename, r)
	if err != nil {
		return domain.NewUploaderFailure(err.Error())
	}

	u.logger.Info("uploading project", "project", project, "file", filename, "bytes", body.Len())

	resp, err := u.transport.PostMultipart(ctx, u.endpoint.URL(PathManager), body, contentType)
	if err != nil {
		return domain.NewUploaderFailure(err.Error())
	}

	var res domain.UploaderResult
	if err := decode(resp, &res); err != nil {
		return domain.NewUploaderFailure(err.Error())
	}
	return &res
}

// encodeUpload собирает multipart-тело: session.id, ajax=upload, file, project.
func encodeUpload(session domain.Session, project, filename string, r io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(paramSession, string(session)); err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}
	if err := w.WriteField("ajax", "upload"); err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", "application/zip")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("read artifact: %w", err)
	}

	if err := w.WriteField("project", project); err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
