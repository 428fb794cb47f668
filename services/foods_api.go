package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/foodplate-dashboard/models"
	"github.com/yeremiapane/foodplate-dashboard/utils"
)

// APIError is returned for any non-2xx answer from the foods API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("foods api %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, strings.TrimSpace(e.Body))
}

// FoodsAPI talks to the remote food plate REST service.
type FoodsAPI struct {
	baseURL    string
	httpClient *http.Client
}

// NewFoodsAPI builds a client for baseURL. A zero timeout means requests never time out.
func NewFoodsAPI(baseURL string, timeout time.Duration) *FoodsAPI {
	return &FoodsAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List fetches every food plate.
func (api *FoodsAPI) List(ctx context.Context) ([]models.FoodPlate, error) {
	var foods []models.FoodPlate
	if err := api.do(ctx, http.MethodGet, "/foods", nil, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// Create posts a new plate. The server assigns the id.
func (api *FoodsAPI) Create(ctx context.Context, draft models.FoodPlateDraft, available bool) (models.FoodPlate, error) {
	payload := map[string]interface{}{
		"name":        draft.Name,
		"description": draft.Description,
		"price":       draft.Price,
		"image":       draft.Image,
		"available":   available,
	}

	var created models.FoodPlate
	if err := api.do(ctx, http.MethodPost, "/foods", payload, &created); err != nil {
		return models.FoodPlate{}, err
	}
	return created, nil
}

// Update replaces the plate stored under food.ID with the full record.
func (api *FoodsAPI) Update(ctx context.Context, food models.FoodPlate) (models.FoodPlate, error) {
	var updated models.FoodPlate
	if err := api.do(ctx, http.MethodPut, fmt.Sprintf("/foods/%d", food.ID), food, &updated); err != nil {
		return models.FoodPlate{}, err
	}
	return updated, nil
}

// Delete removes the plate with the given id.
func (api *FoodsAPI) Delete(ctx context.Context, id int) error {
	return api.do(ctx, http.MethodDelete, fmt.Sprintf("/foods/%d", id), nil, nil)
}

func (api *FoodsAPI) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, api.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := utils.RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := api.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	utils.InfoLogger.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Debug("foods api call")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
