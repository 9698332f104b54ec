package scraper

// waitForFinishSecs es lo máximo que la API de Apify mantiene abierta una
// llamada esperando que la run termine; el polling cubre el resto.
const waitForFinishSecs = 60

const runStatusSucceeded = "SUCCEEDED"

// runInput es el input del actor de perfiles de Instagram.
type runInput struct {
	Usernames []string    `json:"usernames"`
	Proxy     proxyConfig `json:"proxy"`
}

type proxyConfig struct {
	UseApifyProxy    bool     `json:"useApifyProxy"`
	ApifyProxyGroups []string `json:"apifyProxyGroups"`
}

// runEnvelope envuelve las respuestas de la API de runs.
type runEnvelope struct {
	Data runData `json:"data"`
}

type runData struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

// terminal indica si la run ya no va a cambiar de estado.
func (r runData) terminal() bool {
	switch r.Status {
	case runStatusSucceeded, "FAILED", "ABORTED", "TIMED-OUT":
		return true
	}
	return false
}
