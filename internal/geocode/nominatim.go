package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

type NominatimGeocoder struct {
	BaseURL     string
	UserAgent   string
	MinInterval time.Duration
	Client      *http.Client

	mu        sync.Mutex
	lastReqAt time.Time
	cache     map[string]string
}

type nominatimReverseItem struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

func (g *NominatimGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	if g.Client == nil {
		g.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if g.BaseURL == "" {
		g.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if g.UserAgent == "" {
		g.UserAgent = "civicpulse-backend"
	}
	if g.MinInterval <= 0 {
		g.MinInterval = time.Second
	}

	key := fmt.Sprintf("%.5f,%.5f", lat, lng)

	g.mu.Lock()
	if g.cache == nil {
		g.cache = map[string]string{}
	}
	if cached, ok := g.cache[key]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	sleepFor := time.Until(g.lastReqAt.Add(g.MinInterval))
	if sleepFor > 0 {
		g.mu.Unlock()
		time.Sleep(sleepFor)
		g.mu.Lock()
	}
	g.lastReqAt = time.Now()
	g.mu.Unlock()

	endpoint := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", g.BaseURL, lat, lng)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("nominatim http error: %s", resp.Status)
	}

	var item nominatimReverseItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return "", err
	}
	address, err := parseReverseItem(item)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	g.cache[key] = address
	g.mu.Unlock()

	return address, nil
}

func parseReverseItem(item nominatimReverseItem) (string, error) {
	if item.Error != "" || item.DisplayName == "" {
		return "", ErrNotFound
	}
	return item.DisplayName, nil
}
