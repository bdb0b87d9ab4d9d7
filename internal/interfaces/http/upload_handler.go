package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/infrastructure/storage"
)

// Tamaño máximo de un archivo de evidencia.
const maxEvidenceSize = 10 << 20 // 10 MiB

// UploadHandler recibe archivos de evidencia para órdenes.
type UploadHandler struct {
	store *storage.LocalEvidenceStore
}

// NewUploadHandler construye el handler.
func NewUploadHandler(store *storage.LocalEvidenceStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Evidence godoc
// @Summary      Subir evidencia
// @Description  Guarda el archivo y devuelve la referencia para adjuntar como
//
//	evidence_photo_url al completar una orden.
//
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo de evidencia"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/uploads/evidence [post]
func (h *UploadHandler) Evidence(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "campo file requerido"})
	}
	if fileHeader.Size > maxEvidenceSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo demasiado grande"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo ilegible"})
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo ilegible"})
	}
	ref, err := h.store.Save(fileHeader.Filename, content)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": ref})
}
