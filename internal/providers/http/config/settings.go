package config

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/httpdata/internal/providers/http/client"
	"github.com/GriffinCanCode/httpdata/internal/shared/types"
)

// SettingsOps reads and updates the client's transport settings.
type SettingsOps struct {
	*client.HTTPOps
}

// knob maps one tool parameter onto a field of client.Settings.
type knob struct {
	name string
	desc string
	get  func(s client.Settings) float64
	set  func(s *client.Settings, v float64)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

var knobs = []knob{
	{
		name: "timeout_seconds",
		desc: "Whole-request timeout in seconds",
		get:  func(s client.Settings) float64 { return s.Timeout.Seconds() },
		set:  func(s *client.Settings, v float64) { s.Timeout = seconds(v) },
	},
	{
		name: "retry_max",
		desc: fmt.Sprintf("Retries after the first attempt (0-%d)", client.MaxRetries),
		get:  func(s client.Settings) float64 { return float64(s.RetryMax) },
		set:  func(s *client.Settings, v float64) { s.RetryMax = int(v) },
	},
	{
		name: "retry_wait_min_seconds",
		desc: "Shortest backoff between retries in seconds",
		get:  func(s client.Settings) float64 { return s.RetryWaitMin.Seconds() },
		set:  func(s *client.Settings, v float64) { s.RetryWaitMin = seconds(v) },
	},
	{
		name: "retry_wait_max_seconds",
		desc: "Longest backoff between retries in seconds",
		get:  func(s client.Settings) float64 { return s.RetryWaitMax.Seconds() },
		set:  func(s *client.Settings, v float64) { s.RetryWaitMax = seconds(v) },
	},
	{
		name: "rate_limit",
		desc: "Requests per second, 0 for unlimited",
		get:  func(s client.Settings) float64 { return s.RateLimit },
		set:  func(s *client.Settings, v float64) { s.RateLimit = v },
	},
}

// GetTools returns the settings tools. Every parameter of http.configure
// is optional; omitted settings keep their value.
func (s *SettingsOps) GetTools() []types.Tool {
	params := make([]types.Parameter, 0, len(knobs))
	for _, k := range knobs {
		params = append(params, types.Parameter{Name: k.name, Type: "number", Description: k.desc})
	}
	return []types.Tool{
		{
			ID:          "http.configure",
			Name:        "Configure Client",
			Description: "Change timeout, retry and rate limit settings",
			Parameters:  params,
			Returns:     "object",
		},
		{
			ID:          "http.settings",
			Name:        "Client Settings",
			Description: "Current timeout, retry and rate limit settings",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
	}
}

// Configure applies the given settings together; nothing changes when any
// of them is rejected.
func (s *SettingsOps) Configure(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	next := s.Client.Settings()
	changed := 0
	for _, k := range knobs {
		if _, ok := params[k.name]; !ok {
			continue
		}
		v, err := client.GetNumber(params, k.name, true)
		if err != nil {
			return client.Failure(err.Error())
		}
		k.set(&next, v)
		changed++
	}
	if changed == 0 {
		return client.Failure("no settings given")
	}
	if err := s.Client.Apply(next); err != nil {
		return client.Failure(err.Error())
	}
	return s.report()
}

// Current reports the settings in force.
func (s *SettingsOps) Current(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return s.report()
}

func (s *SettingsOps) report() (*types.Result, error) {
	cur := s.Client.Settings()
	out := make(map[string]interface{}, len(knobs)+2)
	for _, k := range knobs {
		out[k.name] = k.get(cur)
	}
	out["burst"] = cur.Burst
	out["unlimited"] = cur.RateLimit == 0
	return client.Success(out)
}
