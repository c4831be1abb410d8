package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/cvpolish/api/http/presenter"
	"github.com/artem13815/cvpolish/pkg/resume"
)

type ResumesHandler struct {
	svc      resume.UseCase
	maxBytes int64
}

func NewResumesHandler(svc resume.UseCase, maxBytes int64) *ResumesHandler {
	if maxBytes <= 0 {
		maxBytes = 15 << 20
	}
	return &ResumesHandler{svc: svc, maxBytes: maxBytes}
}

// Upload загружает файл резюме, сохраняет его и распознаёт структуру.
// @Summary Загрузить резюме
// @Description Принимает PDF/DOCX/TXT, сохраняет файл, извлекает текст и распознанную запись.
// @Tags        Резюме
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Файл резюме (PDF/DOCX/TXT)"
// @Security    BearerAuth
// @Success     201 {object} resume.Stored
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     413 {object} presenter.ErrorResponse
// @Failure     422 {object} presenter.ErrorResponse
// @Failure     429 {object} presenter.ErrorResponse
// @Router      /resumes [post]
func (h *ResumesHandler) Upload(c *fiber.Ctx) error {
	name, mime, data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return fail(c, err)
	}
	st, err := h.svc.Upload(c.UserContext(), actorFrom(c), name, mime, data)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, st)
}

// List возвращает список резюме пользователя (или все, если админ).
// @Summary Список резюме
// @Tags    Резюме
// @Produce json
// @Param   limit  query int false "Лимит (1..200)"
// @Param   offset query int false "Смещение"
// @Security BearerAuth
// @Success 200 {array} resume.Resume
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c)
	items, err := h.svc.List(c.UserContext(), actorFrom(c), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get возвращает метаданные и распознанную запись.
// @Summary Получить резюме
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Stored
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	st, err := h.svc.Get(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// Download скачивает исходный файл резюме.
// @Summary Скачать файл резюме
// @Tags    Резюме
// @Produce application/octet-stream
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/file [get]
func (h *ResumesHandler) Download(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	meta, err := h.svc.Download(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.Download(meta.StorageURI, meta.Filename)
}

// Reparse повторно распознаёт сохранённый текст.
// @Summary Распознать заново
// @Tags    Резюме
// @Produce json
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 200 {object} resume.Stored
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/reparse [post]
func (h *ResumesHandler) Reparse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	st, err := h.svc.Reparse(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// Delete удаляет резюме и сопутствующие данные, а также файл на диске.
// @Summary Удалить резюме
// @Tags    Резюме
// @Param   id path string true "ID резюме (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [delete]
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.UserContext(), actorFrom(c), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
