package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce
// a códigos de estado en un único punto.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrInvalidInput = errors.New("entrada inválida")
)

// ValidationError agrupa mensajes de validación por campo, al estilo
// {"errors": {"name": ["..."], "parent_id": ["..."]}} de la respuesta 422.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError crea un error de validación con un primer mensaje.
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	e.Add(field, message)
	return e
}

// Add acumula un mensaje para un campo.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Error implementa error con un resumen por campo.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validación fallida: " + strings.Join(parts, ", ")
}

// ConflictError es un ErrConflict con mensaje descriptivo para el cliente
// (ej. "no se puede eliminar una categoría con productos").
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Unwrap permite detectar el conflicto con errors.Is(err, ErrConflict).
func (e *ConflictError) Unwrap() error { return ErrConflict }
