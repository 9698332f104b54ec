package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	ApifyToken               string `env:"APIFY_API_TOKEN,required"`
	ApifyBaseURL             string `env:"APIFY_BASE_URL" envDefault:"https://api.apify.com"`
	ApifyActorID             string `env:"APIFY_ACTOR_ID" envDefault:"dSCLg0C3YEZ83HzYX"`
	ApifyMaxRetries          int    `env:"APIFY_MAX_RETRIES" envDefault:"8"`
	ApifyMinRetryDelayMillis int    `env:"APIFY_MIN_RETRY_DELAY_MS" envDefault:"500"`
	ApifyTimeoutSecs         int    `env:"APIFY_TIMEOUT_SECS" envDefault:"120"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY,required"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	// ResultDelayMillis pausa la respuesta para que el frontend muestre su
	// estado de carga; 0 la desactiva.
	ResultDelayMillis int `env:"RESULT_DELAY_MS" envDefault:"500"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
