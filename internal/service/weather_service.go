package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/internal/pkg/logger"
	"agrisense-be/internal/repository/contract"
)

const msgWeatherFailed = "Failed to fetch weather data"

type WeatherConfig struct {
	APIKey   string
	BaseURL  string
	CacheTTL time.Duration
}

type IWeatherService interface {
	// Current returns the provider's JSON body unchanged.
	Current(ctx context.Context, lat, lon float64) (json.RawMessage, error)
}

type weatherService struct {
	cfg        WeatherConfig
	cache      contract.ResponseCache
	httpClient *http.Client
	logger     logger.ILogger
}

func NewWeatherService(cfg WeatherConfig, cache contract.ResponseCache, httpClient *http.Client, log logger.ILogger) IWeatherService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &weatherService{
		cfg:        cfg,
		cache:      cache,
		httpClient: httpClient,
		logger:     log,
	}
}

// Coordinates are rounded to 2 decimals (about 1 km) for both the cache key and the upstream call.
func roundedCoordinates(lat, lon float64) (string, string) {
	return fmt.Sprintf("%.2f", lat), fmt.Sprintf("%.2f", lon)
}

func weatherCacheKey(lat, lon float64) string {
	la, lo := roundedCoordinates(lat, lon)
	return fmt.Sprintf("weather:%s:%s", la, lo)
}

func (s *weatherService) Current(ctx context.Context, lat, lon float64) (json.RawMessage, error) {
	key := weatherCacheKey(lat, lon)

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("WEATHER", "Cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		} else if found {
			return json.RawMessage(cached), nil
		}
	}

	body, err := s.fetch(ctx, lat, lon)
	if err != nil {
		s.logger.Error("WEATHER", "Weather API error", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Internal(msgWeatherFailed, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("WEATHER", "Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return json.RawMessage(body), nil
}

func (s *weatherService) fetch(ctx context.Context, lat, lon float64) ([]byte, error) {
	la, lo := roundedCoordinates(lat, lon)
	params := url.Values{}
	params.Add("lat", la)
	params.Add("lon", lo)
	params.Add("appid", s.cfg.APIKey)
	params.Add("units", "metric")

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/data/2.5/weather?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("weather provider status %d", resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("weather provider returned invalid JSON")
	}
	return body, nil
}
