package service

import "errors"

// Errores centinela del pipeline de roast; el handler HTTP los traduce a
// códigos de estado con errors.Is.
var (
	// ErrInvalidInput indica que el username llegó vacío o ausente.
	ErrInvalidInput = errors.New("username is required")

	// ErrNotFound indica que el proveedor de scraping no devolvió registros
	// usables para la cuenta pedida.
	ErrNotFound = errors.New("no instagram data found")
)
