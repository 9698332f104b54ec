package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"roastgram/internal/domain"
	"roastgram/internal/llm"
)

// FallbackRoast se devuelve cuando el proveedor de generación falla: el
// perfil ya se obtuvo, así que un roast degradado es mejor que un error.
const FallbackRoast = "Maaf, saya tidak dapat membuat roast untuk akun ini. Silakan coba lagi nanti."

// ProfileScraper obtiene los registros crudos del proveedor de scraping para
// un username. Los reintentos son responsabilidad del cliente, no de este
// servicio.
type ProfileScraper interface {
	Scrape(ctx context.Context, username string) ([]domain.RawScrapeRecord, error)
}

// RoastService orquesta el pipeline completo: scrape, normalización, prompt
// y generación. No guarda estado entre requests.
type RoastService struct {
	logger        *zap.Logger
	scraper       ProfileScraper
	generator     llm.Generator
	promptBuilder RoastPromptBuilder
	resultDelay   time.Duration
}

// NewRoastService crea un RoastService con sus dependencias explícitas.
func NewRoastService(logger *zap.Logger, scraper ProfileScraper, generator llm.Generator, resultDelay time.Duration) *RoastService {
	return &RoastService{
		logger:        logger,
		scraper:       scraper,
		generator:     generator,
		promptBuilder: RoastPromptBuilder{},
		resultDelay:   resultDelay,
	}
}

// Roast ejecuta el pipeline para un username y devuelve el perfil junto con
// el texto generado. Devuelve ErrInvalidInput o ErrNotFound cuando aplica;
// un fallo de generación no es un error: se sustituye por FallbackRoast.
func (s *RoastService) Roast(ctx context.Context, username string) (domain.RoastResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.RoastResult{}, ErrInvalidInput
	}

	records, err := s.scraper.Scrape(ctx, username)
	if err != nil {
		return domain.RoastResult{}, fmt.Errorf("fetch instagram data: %w", err)
	}
	if len(records) == 0 {
		return domain.RoastResult{}, ErrNotFound
	}

	profile, err := NormalizeProfile(records[0], username)
	if err != nil {
		return domain.RoastResult{}, err
	}

	// Pausa corta para que el frontend alcance a mostrar su loading state.
	if s.resultDelay > 0 {
		select {
		case <-time.After(s.resultDelay):
		case <-ctx.Done():
			return domain.RoastResult{}, ctx.Err()
		}
	}

	prompt := s.promptBuilder.BuildRoastPrompt(profile)
	roast, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("roast generation failed, using fallback",
			zap.String("username", profile.Username),
			zap.Error(err),
		)
		roast = FallbackRoast
	}

	return domain.RoastResult{Profile: profile, Roast: roast}, nil
}
