package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrPersistence       = errors.New("falla de persistencia")
)

// ErrQuantityOverflow la suma de una entrada no cabe en la cantidad máxima representable.
// Es una entrada inválida: errors.Is(err, ErrInvalidInput) es verdadero.
var ErrQuantityOverflow = fmt.Errorf("%w: la cantidad resultante excede el máximo permitido", ErrInvalidInput)

// PersistenceError envuelve cualquier falla del almacén (conexión, escritura, commit).
// errors.Is(err, ErrPersistence) es verdadero para todo *PersistenceError.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is permite comparar contra ErrPersistence sin perder el error original.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// Persistence construye un *PersistenceError. Devuelve nil si err es nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// Kind es el código estable con el que la frontera (HTTP, CLI) clasifica un error.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindForbidden         Kind = "FORBIDDEN"
	KindDuplicate         Kind = "DUPLICATE"
	KindPersistence       Kind = "PERSISTENCE"
	KindInternal          Kind = "INTERNAL"
)

// KindOf clasifica err estructuralmente (errors.Is), nunca por el texto del mensaje.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	default:
		return KindInternal
	}
}
