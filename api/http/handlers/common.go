package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvpolish/api/http/presenter"
	"github.com/artem13815/cvpolish/pkg/improve"
	"github.com/artem13815/cvpolish/pkg/render"
	"github.com/artem13815/cvpolish/pkg/resume"
	"github.com/artem13815/cvpolish/pkg/resume/textextract"
	"github.com/artem13815/cvpolish/pkg/security/jwt"
)

// subjectNamespace maps non-UUID identity provider subjects onto stable UUIDs.
var subjectNamespace = uuid.MustParse("8f0c3a52-5d3e-4c71-9a51-0b6c7f3f2d10")

func actorFrom(c *fiber.Ctx) resume.Actor {
	isAdmin, _ := c.Locals(jwt.LocalIsAdmin).(bool)
	sub, _ := c.Locals(jwt.LocalUserID).(string)
	id, err := uuid.Parse(sub)
	if err != nil && sub != "" {
		id = uuid.NewSHA1(subjectNamespace, []byte(sub))
	}
	return resume.Actor{UserID: id, IsAdmin: isAdmin}
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("%w: limit is %d bytes", resume.ErrTooLarge, max)
	}
	return b, nil
}

// readUpload returns the name and bytes of the multipart "file" field.
func readUpload(c *fiber.Ctx, max int64) (string, string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return "", "", nil, errFileRequired
	}
	if !textextract.Supported(fh.Filename) {
		return "", "", nil, textextract.ErrUnsupportedFormat
	}
	if fh.Size > max {
		return "", "", nil, fmt.Errorf("%w: limit is %d bytes", resume.ErrTooLarge, max)
	}
	file, err := fh.Open()
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()
	data, err := readAtMost(file, max)
	if err != nil {
		return "", "", nil, err
	}
	return fh.Filename, fh.Header.Get("Content-Type"), data, nil
}

var errFileRequired = errors.New("file is required (pdf, docx or txt)")

// fail maps domain errors onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, resume.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "resume not found")
	case errors.Is(err, resume.ErrTooLarge):
		return presenter.Error(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, resume.ErrBusy):
		return presenter.Error(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, errFileRequired),
		errors.Is(err, textextract.ErrUnsupportedFormat),
		errors.Is(err, textextract.ErrUnreadable):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, textextract.ErrTextTooShort),
		errors.Is(err, resume.ErrInvalidRecord):
		return presenter.Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, improve.ErrLLMUnavailable),
		errors.Is(err, render.ErrRendererUnavailable):
		return presenter.Error(c, http.StatusServiceUnavailable, err.Error())
	default:
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}
