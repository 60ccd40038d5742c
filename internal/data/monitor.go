package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
)

// monitorRepo signals the monitor process over its control API
type monitorRepo struct {
	baseURL string
	client  *http.Client
}

// NewMonitorRepo creates a monitor repository for the control API at baseURL
func NewMonitorRepo(baseURL string, client *http.Client) repo.MonitorRepo {
	if client == nil {
		client = http.DefaultClient
	}
	return &monitorRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Start starts the monitor loop
func (r *monitorRepo) Start(ctx context.Context) error {
	return r.control(ctx, "start")
}

// Stop stops the monitor loop
func (r *monitorRepo) Stop(ctx context.Context) error {
	return r.control(ctx, "stop")
}

// Restart restarts the monitor
func (r *monitorRepo) Restart(ctx context.Context) error {
	return r.control(ctx, "restart")
}

// ForceFetch runs one fetch cycle immediately
func (r *monitorRepo) ForceFetch(ctx context.Context) error {
	return r.control(ctx, "fetch")
}

// controlResponse is the monitor's reply body
type controlResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (r *monitorRepo) control(ctx context.Context, action string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/control/"+action, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("monitor request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("monitor returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result controlResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("decode monitor response: %w", err)
		}
		if !result.Success {
			return fmt.Errorf("monitor rejected %s: %s", action, result.Error)
		}
	}
	return nil
}
