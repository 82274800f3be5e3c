package controller

import (
	"clinical-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPatientController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	Search(ctx *fiber.Ctx) error
}

type patientController struct {
	clinical service.IClinicalService
}

func NewPatientController(clinical service.IClinicalService) IPatientController {
	return &patientController{clinical: clinical}
}

func (c *patientController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	h := r.Group("/patients")
	h.Use(guard)
	h.Get("/search", c.Search)
}

// Search resolves a patient by document for pre-chat verification in the
// client UI. The websocket pipeline does its own lookup and never depends
// on this route.
func (c *patientController) Search(ctx *fiber.Ctx) error {
	documentTypeId := ctx.QueryInt("document_type_id")
	documentNumber := ctx.Query("document_number")
	if documentTypeId == 0 || documentNumber == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "document_type_id and document_number are required",
		})
	}

	result := c.clinical.FetchPatientAndRecords(ctx.Context(), documentTypeId, documentNumber)
	switch result.Status {
	case service.LookupNotFound:
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    404,
			"message": "Patient not found",
		})
	case service.LookupFailed:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": result.Err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"data": fiber.Map{
			"id":              result.Patient.Id,
			"full_name":       result.Patient.FullName(),
			"document_number": result.Patient.DocumentNumber,
			"total_records":   result.Records.TotalCount(),
		},
	})
}
