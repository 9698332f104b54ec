package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"roastgram/internal/domain"
)

// Options controla el presupuesto de reintentos del cliente. Los ceros se
// reemplazan por los defaults del proveedor (8 intentos, 500ms entre
// intentos, 120s en total).
type Options struct {
	MaxRetries    int
	MinRetryDelay time.Duration
	Timeout       time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxRetries <= 0 {
		o.MaxRetries = 8
	}
	if o.MinRetryDelay <= 0 {
		o.MinRetryDelay = 500 * time.Millisecond
	}
	if o.Timeout <= 0 {
		o.Timeout = 120 * time.Second
	}
	return o
}

// Client habla con la API v2 de Apify: arranca una run del actor de
// Instagram, espera a que termine y lista los items del dataset.
type Client struct {
	baseURL    string
	token      string
	actorID    string
	opts       Options
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient construye un cliente del proveedor de scraping. httpClient puede
// ser nil para usar un cliente por defecto.
func NewClient(baseURL, token, actorID string, opts Options, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		actorID:    actorID,
		opts:       opts.withDefaults(),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Scrape ejecuta el actor para un username y devuelve los registros crudos
// del dataset. Un slice vacío significa que el actor no encontró la cuenta.
func (c *Client) Scrape(ctx context.Context, username string) ([]domain.RawScrapeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	run, err := c.startRun(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("start actor run: %w", err)
	}

	run, err = c.waitForRun(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("wait for actor run: %w", err)
	}
	if run.Status != runStatusSucceeded {
		return nil, fmt.Errorf("actor run finished with status %s", run.Status)
	}

	records, err := c.listDatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, fmt.Errorf("list dataset items: %w", err)
	}
	return records, nil
}

// startRun lanza la run del actor con proxy residencial, igual que el input
// documentado del actor de perfiles.
func (c *Client) startRun(ctx context.Context, username string) (runData, error) {
	input := runInput{
		Usernames: []string{username},
		Proxy: proxyConfig{
			UseApifyProxy:    true,
			ApifyProxyGroups: []string{"RESIDENTIAL"},
		},
	}
	body, err := json.Marshal(input)
	if err != nil {
		return runData{}, fmt.Errorf("marshal actor input: %w", err)
	}

	url := fmt.Sprintf("%s/v2/acts/%s/runs?waitForFinish=%d", c.baseURL, c.actorID, waitForFinishSecs)
	respBody, err := c.doWithRetry(ctx, http.MethodPost, url, body)
	if err != nil {
		return runData{}, err
	}

	var envelope runEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return runData{}, fmt.Errorf("unmarshal run: %w", err)
	}
	if envelope.Data.ID == "" {
		return runData{}, errors.New("run response without id")
	}
	return envelope.Data, nil
}

// waitForRun hace polling hasta que la run llegue a un estado terminal o el
// contexto expire.
func (c *Client) waitForRun(ctx context.Context, run runData) (runData, error) {
	for !run.terminal() {
		select {
		case <-ctx.Done():
			return runData{}, ctx.Err()
		case <-time.After(c.opts.MinRetryDelay):
		}

		url := fmt.Sprintf("%s/v2/actor-runs/%s?waitForFinish=%d", c.baseURL, run.ID, waitForFinishSecs)
		respBody, err := c.doWithRetry(ctx, http.MethodGet, url, nil)
		if err != nil {
			return runData{}, err
		}

		var envelope runEnvelope
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return runData{}, fmt.Errorf("unmarshal run status: %w", err)
		}
		run = envelope.Data
	}
	return run, nil
}

func (c *Client) listDatasetItems(ctx context.Context, datasetID string) ([]domain.RawScrapeRecord, error) {
	if datasetID == "" {
		return nil, errors.New("run without default dataset")
	}

	url := fmt.Sprintf("%s/v2/datasets/%s/items?clean=true", c.baseURL, datasetID)
	respBody, err := c.doWithRetry(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var records []domain.RawScrapeRecord
	if err := json.Unmarshal(respBody, &records); err != nil {
		return nil, fmt.Errorf("unmarshal dataset items: %w", err)
	}
	return records, nil
}

// doWithRetry ejecuta un request con el presupuesto de reintentos del
// cliente: errores de red, 429 y 5xx se reintentan con al menos
// MinRetryDelay entre intentos; el resto corta de inmediato.
func (c *Client) doWithRetry(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 1 {
			if c.logger != nil {
				c.logger.Debug("retrying apify request",
					zap.String("url", url),
					zap.Int("attempt", attempt),
					zap.Error(lastErr),
				)
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.opts.MinRetryDelay):
			}
		}

		respBody, retryable, err := c.do(ctx, method, url, body)
		if err == nil {
			return respBody, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("apify request failed after %d attempts: %w", c.opts.MaxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (respBody []byte, retryable bool, err error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Errores de transporte se consideran transitorios salvo que el
		// contexto ya haya expirado.
		return nil, ctx.Err() == nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		transient := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, transient, fmt.Errorf("apify http error: status=%d body=%s", resp.StatusCode, truncate(respBody, 200))
	}
	return respBody, false, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
