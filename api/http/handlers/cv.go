package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvpolish/api/http/presenter"
	"github.com/artem13815/cvpolish/pkg/cvparse"
	"github.com/artem13815/cvpolish/pkg/improve"
	"github.com/artem13815/cvpolish/pkg/render"
	"github.com/artem13815/cvpolish/pkg/resume"
	"github.com/artem13815/cvpolish/pkg/resume/textextract"
)

type Improver interface {
	Improve(ctx context.Context, rec cvparse.Record) (cvparse.Record, error)
}

type PDFRenderer interface {
	PDF(ctx context.Context, rec cvparse.Record) ([]byte, error)
}

// CVHandler serves the stateless form helpers: parse, prefill, improve, pdf.
type CVHandler struct {
	parser       resume.TextParser
	improver     Improver
	renderer     PDFRenderer
	maxBytes     int64
	minTextChars int
	log          *slog.Logger
}

type CVOptions struct {
	MaxBytes     int64
	MinTextChars int
}

// NewCVHandler builds the handler. improver may be nil when no LLM is configured.
func NewCVHandler(parser resume.TextParser, improver Improver, renderer PDFRenderer, opts CVOptions, log *slog.Logger) *CVHandler {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 15 << 20
	}
	if log == nil {
		log = slog.Default()
	}
	return &CVHandler{
		parser:       parser,
		improver:     improver,
		renderer:     renderer,
		maxBytes:     opts.MaxBytes,
		minTextChars: opts.MinTextChars,
		log:          log,
	}
}

type parseTextRequest struct {
	Text string `json:"text"`
}

// ParseResponse is the result of /cv/parse.
type ParseResponse struct {
	Record      cvparse.Record `json:"record"`
	ManualEntry bool           `json:"manualEntry"`
}

type prefillRequest struct {
	Existing json.RawMessage `json:"existing"`
	Parsed   json.RawMessage `json:"parsed"`
}

// Parse извлекает структуру резюме из файла или текста.
// @Summary Распознать резюме
// @Description Принимает PDF/DOCX/TXT (multipart, поле file) или JSON {"text": "..."} и возвращает структурированную запись. manualEntry=true, если ничего не найдено.
// @Tags    CV
// @Accept  multipart/form-data
// @Accept  json
// @Produce json
// @Param   file formData file false "Файл резюме"
// @Security BearerAuth
// @Success 200 {object} handlers.ParseResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /cv/parse [post]
func (h *CVHandler) Parse(c *fiber.Ctx) error {
	var text string
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		name, _, data, err := readUpload(c, h.maxBytes)
		if err != nil {
			return fail(c, err)
		}
		if text, err = textextract.Extract(name, data); err != nil {
			return fail(c, err)
		}
	} else {
		var req parseTextRequest
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid body: expected multipart file or {\"text\": ...}")
		}
		text = textextract.Normalize(req.Text)
	}
	if err := textextract.CheckLength(text, h.minTextChars); err != nil {
		return fail(c, err)
	}
	rec := h.parser.Parse(text)
	return presenter.JSON(c, http.StatusOK, ParseResponse{Record: rec, ManualEntry: rec.IsEmpty()})
}

// Prefill объединяет введённые пользователем данные с распознанными.
// @Summary Предзаполнить форму
// @Tags    CV
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} cvparse.Record
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /cv/prefill [post]
func (h *CVHandler) Prefill(c *fiber.Ctx) error {
	var req prefillRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid body")
	}
	existing := cvparse.NewRecord()
	if len(req.Existing) > 0 && string(req.Existing) != "null" {
		var err error
		if existing, err = resume.DecodeRecordValue(req.Existing); err != nil {
			return fail(c, err)
		}
	}
	parsed, err := resume.DecodeRecordValue(req.Parsed)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, resume.Merge(existing, parsed))
}

// Improve переписывает описания с помощью LLM.
// @Summary Улучшить формулировки
// @Tags    CV
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} cvparse.Record
// @Failure 422 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /cv/improve [post]
func (h *CVHandler) Improve(c *fiber.Ctx) error {
	rec, err := resume.DecodeRecord(c.Body())
	if err != nil {
		return fail(c, err)
	}
	if h.improver == nil {
		return fail(c, improve.ErrLLMUnavailable)
	}
	out, err := h.improver.Improve(c.UserContext(), rec)
	if err != nil {
		h.log.WarnContext(c.UserContext(), "improve failed", "err", err)
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// PDF формирует PDF-версию резюме.
// @Summary Скачать PDF
// @Tags    CV
// @Accept  json
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 422 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /cv/pdf [post]
func (h *CVHandler) PDF(c *fiber.Ctx) error {
	rec, err := resume.DecodeRecord(c.Body())
	if err != nil {
		return fail(c, err)
	}
	if h.renderer == nil {
		return fail(c, render.ErrRendererUnavailable)
	}
	out, err := h.renderer.PDF(c.UserContext(), rec)
	if err != nil {
		h.log.WarnContext(c.UserContext(), "pdf failed", "err", err)
		return fail(c, err)
	}
	return presenter.Attachment(c, "cv.pdf", "application/pdf", out)
}
