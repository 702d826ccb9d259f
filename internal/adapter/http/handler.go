package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/usecase"
	"cv-builder/pkg/infrastructure"
	"cv-builder/pkg/pagination"
	"cv-builder/pkg/preview"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ExportLister reads the export log of a session.
type ExportLister interface {
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.ExportJob, error)
}

type Handler struct {
	store    *usecase.Store
	enhancer *usecase.Enhancer
	exporter *usecase.Exporter
	exports  ExportLister
}

// NewHandler wires the session store and use cases. exports may be nil when
// no export log is configured.
func NewHandler(store *usecase.Store, enhancer *usecase.Enhancer, exporter *usecase.Exporter, exports ExportLister) *Handler {
	return &Handler{store: store, enhancer: enhancer, exporter: exporter, exports: exports}
}

// Register mounts all routes on app.
func (h *Handler) Register(app *fiber.App) {
	s := app.Group("/sessions")
	s.Post("", h.CreateSession)
	s.Get("/:id", h.GetSession)
	s.Delete("/:id", h.DeleteSession)

	s.Put("/:id/personal", h.SetPersonal)
	s.Put("/:id/photo", h.SetPhoto)
	s.Delete("/:id/photo", h.RemovePhoto)
	s.Put("/:id/summary", h.SetSummary)
	s.Put("/:id/skills", h.SetSkills)
	s.Put("/:id/options", h.SetOptions)

	s.Post("/:id/experience", h.AddExperience)
	s.Patch("/:id/experience/:entryId", h.UpdateExperience)
	s.Delete("/:id/experience/:entryId", h.RemoveExperience)
	s.Post("/:id/education", h.AddEducation)
	s.Patch("/:id/education/:entryId", h.UpdateEducation)
	s.Delete("/:id/education/:entryId", h.RemoveEducation)

	s.Post("/:id/summary/enhance", h.EnhanceSummary)
	s.Post("/:id/experience/:entryId/enhance", h.EnhanceExperience)

	s.Get("/:id/preview", h.Preview)
	s.Post("/:id/export", h.Export)
	s.Get("/:id/exports", h.ListExports)
}

// CreateSession starts a session from the posted CV, or from the sample CV
// when the body is empty.
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusCreated).JSON(h.store.Create(nil).Snapshot())
	}

	cv, err := model.DecodeCV(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.Create(&cv).Snapshot())
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.Snapshot())
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, usecase.ErrSessionNotFound)
	}
	if err := h.store.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SetPersonal(c *fiber.Ctx) error {
	var req usecase.PersonalPatch
	return h.withBody(c, &req, func(s *usecase.Session) error {
		s.SetPersonalDetails(req)
		return c.JSON(s.Snapshot().CV.PersonalDetails)
	})
}

type photoReq struct {
	ProfilePicture string `json:"profilePicture"`
}

func (h *Handler) SetPhoto(c *fiber.Ctx) error {
	var req photoReq
	return h.withBody(c, &req, func(s *usecase.Session) error {
		if !preview.ValidPhotoURL(req.ProfilePicture) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "profilePicture must be a data:image URL or http(s) URL"})
		}
		s.SetPhoto(req.ProfilePicture)
		return c.JSON(s.Snapshot().CV.PersonalDetails)
	})
}

func (h *Handler) RemovePhoto(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	s.RemovePhoto()
	return c.SendStatus(fiber.StatusNoContent)
}

type textReq struct {
	Text string `json:"text"`
}

func (h *Handler) SetSummary(c *fiber.Ctx) error {
	var req textReq
	return h.withBody(c, &req, func(s *usecase.Session) error {
		s.SetSummary(req.Text)
		return c.JSON(fiber.Map{"summary": req.Text})
	})
}

func (h *Handler) SetSkills(c *fiber.Ctx) error {
	var req textReq
	return h.withBody(c, &req, func(s *usecase.Session) error {
		s.SetSkills(req.Text)
		return c.JSON(fiber.Map{"skills": req.Text, "list": s.Snapshot().CV.SkillList()})
	})
}

func (h *Handler) SetOptions(c *fiber.Ctx) error {
	var req model.Options
	return h.withBody(c, &req, func(s *usecase.Session) error {
		if err := s.SetOptions(req); err != nil {
			return writeError(c, err)
		}
		return c.JSON(req)
	})
}

func (h *Handler) AddExperience(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.AddExperience())
}

func (h *Handler) UpdateExperience(c *fiber.Ctx) error {
	var req usecase.ExperiencePatch
	return h.withBody(c, &req, func(s *usecase.Session) error {
		e, err := s.UpdateExperience(c.Params("entryId"), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(e)
	})
}

func (h *Handler) RemoveExperience(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.RemoveExperience(c.Params("entryId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddEducation(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.AddEducation())
}

func (h *Handler) UpdateEducation(c *fiber.Ctx) error {
	var req usecase.EducationPatch
	return h.withBody(c, &req, func(s *usecase.Session) error {
		e, err := s.UpdateEducation(c.Params("entryId"), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(e)
	})
}

func (h *Handler) RemoveEducation(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.RemoveEducation(c.Params("entryId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) EnhanceSummary(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.enhancer.EnhanceSummary(c.UserContext(), s)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"summary": out})
}

func (h *Handler) EnhanceExperience(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.enhancer.EnhanceExperience(c.UserContext(), s, c.Params("entryId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"description": out})
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	snap := s.Snapshot()
	html, err := preview.Render(snap.CV, snap.Options)
	if err != nil {
		return writeError(c, err)
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// Export runs the pipeline and sends the PDF as an attachment.
func (h *Handler) Export(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.exporter.Export(c.UserContext(), s)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachmentDisposition(res.FileName))
	c.Set("X-Page-Count", fmt.Sprint(res.Pages))
	return c.Send(res.PDF)
}

// ListExports returns the most recent export log entries of a session.
func (h *Handler) ListExports(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	if h.exports == nil {
		return c.JSON([]domain.ExportJob{})
	}
	jobs, err := h.exports.ListBySession(c.UserContext(), s.ID, c.QueryInt("limit", 20))
	if err != nil {
		return writeError(c, err)
	}
	if jobs == nil {
		jobs = []domain.ExportJob{}
	}
	return c.JSON(jobs)
}

// attachmentDisposition quotes name for Content-Disposition. Non-ASCII names
// get an ASCII fallback plus an RFC 5987 filename* parameter.
func attachmentDisposition(name string) string {
	ascii := true
	fallback := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || r < 0x20 || r == '"' || r == '\\' {
			ascii = false
			return '_'
		}
		return r
	}, name)
	if ascii {
		return `attachment; filename="` + name + `"`
	}
	return `attachment; filename="` + fallback + `"; filename*=UTF-8''` + url.PathEscape(name)
}

func (h *Handler) session(c *fiber.Ctx) (*usecase.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, usecase.ErrSessionNotFound
	}
	return h.store.Get(id)
}

// withBody resolves the session, decodes the JSON body into req and calls fn.
func (h *Handler) withBody(c *fiber.Ctx, req interface{}, fn func(s *usecase.Session) error) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	return fn(s)
}

func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, usecase.ErrEntryNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrEnhanceInFlight), errors.Is(err, usecase.ErrExportInFlight):
		status = fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidOptions):
		status = fiber.StatusBadRequest
	case errors.Is(err, infrastructure.ErrSurfaceNotFound), errors.Is(err, pagination.ErrInvalidDimensions):
		status = fiber.StatusUnprocessableEntity
	}
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
