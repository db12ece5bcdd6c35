package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Pedidos-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// Índices únicos del esquema y el campo que expone cada uno.
var uniqueFields = map[string]string{
	"clients_trade_name_key":           "trade_name",
	"clients_tax_id_key":               "tax_id",
	"products_sku_key":                 "sku",
	"documents_number_key":             "number",
	"documents_type_sequence_key":      "number",
	"installments_document_number_key": "installment_number",
	"line_items_document_position_key": "position",
	"document_counters_pkey":           "type",
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isForeignKeyViolation 23503: la fila todavía es referenciada (o referencia algo que no existe).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isInvalidText 22P02: Postgres no pudo convertir un parámetro (p.ej. texto que no es UUID).
func isInvalidText(err error) bool {
	return pgCode(err) == codeInvalidText
}

// validID las claves son UUID: otra cadena no identifica ninguna fila y no se envía a la base.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// validRef referencia opcional: vacía o UUID.
func validRef(id string) bool {
	return id == "" || validID(id)
}

func pgCode(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// conflictError traduce una violación de unicidad al campo afectado. Si el constraint no es
// conocido se usa fallbackField.
func conflictError(err error, fallbackField, value string) error {
	field := fallbackField
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if f, ok := uniqueFields[pgErr.ConstraintName]; ok {
			field = f
		}
	}
	return &domain.ConflictError{Field: field, Value: value}
}

// nullIfEmpty guarda NULL en vez de cadena vacía (columnas opcionales con FK o índice parcial).
func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
