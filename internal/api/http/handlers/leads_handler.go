package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/dto"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/query"
	"github.com/spec-kit/lead-service/internal/service"
	"github.com/spec-kit/lead-service/pkg/util"
)

// LeadsHandler manages the /api/forms endpoints.
type LeadsHandler struct {
	service *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService *service.LeadService) *LeadsHandler {
	return &LeadsHandler{service: leadService}
}

// Submit POST /api/forms/submit.
func (h *LeadsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}

	lead, err := h.service.Submit(c.UserContext(), service.SubmitInput{
		Subject: req.Subject,
		Message: req.Message,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Status:  req.Status,
		Source:  req.Source,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Form submitted", "form": dto.FromLead(lead)})
}

// List GET /api/forms.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	page := parsePage(c.Query("page"))
	result, err := h.service.List(c.UserContext(), page, filterParams(c))
	if err != nil {
		return err
	}

	forms := make([]dto.FormResponse, 0, len(result.Forms))
	for i := range result.Forms {
		forms = append(forms, dto.FromLead(&result.Forms[i]))
	}
	return c.JSON(dto.FormListResponse{
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		TotalForms:  result.TotalForms,
		Forms:       forms,
	})
}

// Get GET /api/forms/:id.
func (h *LeadsHandler) Get(c *fiber.Ctx) error {
	lead, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromLead(lead))
}

// UpdateStatus PUT /api/forms/:id/status.
func (h *LeadsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}

	lead, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), domain.LeadStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromLead(lead))
}

// AddNote POST /api/forms/:id/notes.
func (h *LeadsHandler) AddNote(c *fiber.Ctx) error {
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload")
	}

	lead, err := h.service.AddNote(c.UserContext(), c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromLead(lead))
}

// Delete DELETE /api/forms/:id.
func (h *LeadsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Form deleted successfully"})
}

// Stats GET /api/forms/stats/dashboard.
func (h *LeadsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Activity GET /api/forms/activity.
func (h *LeadsHandler) Activity(c *fiber.Ctx) error {
	activities, err := h.service.RecentActivity(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(activities)
}

// Export GET /api/forms/export.
func (h *LeadsHandler) Export(c *fiber.Ctx) error {
	payload, err := h.service.ExportCSV(c.UserContext(), filterParams(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+service.ExportFilename)
	return c.Send(payload)
}

func filterParams(c *fiber.Ctx) query.Params {
	return query.Params{
		DateFilter:   c.Query("dateFilter"),
		StatusFilter: c.Query("statusFilter"),
		SourceFilter: c.Query("sourceFilter"),
	}
}

func parsePage(val string) int {
	if val == "" {
		return 1
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 1 {
		return 1
	}
	return parsed
}
