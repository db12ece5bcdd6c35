package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Pedidos-api/internal/application/catalog"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// CodeLookupUnavailable la consulta de CNPJ no respondió; el cliente puede cargarse a mano.
const CodeLookupUnavailable = "LOOKUP_UNAVAILABLE"

// writeError traduce un error de caso de uso a status + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, catalog.ErrLookupUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: CodeLookupUnavailable, Message: err.Error()})
	}
	code := domain.ErrorCode(err)
	if code == domain.CodeInternal {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno en handler")
	}
	return c.Status(statusFor(code)).JSON(dto.ErrorResponse{Code: code, Message: errorMessage(code, err)})
}

func statusFor(code string) int {
	switch code {
	case domain.CodeValidation:
		return fiber.StatusBadRequest
	case domain.CodeDuplicate, domain.CodeInvalidTransition, domain.CodeConflict:
		return fiber.StatusConflict
	case domain.CodeConsistency:
		return fiber.StatusUnprocessableEntity
	case domain.CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// errorMessage los errores internos no exponen el detalle; quedan en el log.
func errorMessage(code string, err error) string {
	if code == domain.CodeInternal {
		return "erro interno"
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
}

// pageFromQuery lee limit/offset; los límites los aplica dto.PageRequest.DefaultPage.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// cleanIDs descarta vacíos y repetidos conservando el orden.
func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
