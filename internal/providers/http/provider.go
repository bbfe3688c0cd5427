package http

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/httpdata/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/client"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/config"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/requests"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/utils"
	"github.com/GriffinCanCode/httpdata/internal/shared/id"
	"github.com/GriffinCanCode/httpdata/internal/shared/types"
	"go.uber.org/zap"
)

// Provider exposes the HTTP client, header and URL operations as tools
type Provider struct {
	client *client.Client

	// Module instances
	requestsOps *requests.RequestsOps
	defaultsOps *config.DefaultsOps
	settingsOps *config.SettingsOps
	urlOps      *utils.URLOps
}

// NewProvider creates a provider backed by c. A nil client uses the
// default configuration.
func NewProvider(c *client.Client) *Provider {
	if c == nil {
		c = client.NewDefault()
	}
	ops := &client.HTTPOps{Client: c}

	return &Provider{
		client:      c,
		requestsOps: &requests.RequestsOps{HTTPOps: ops},
		defaultsOps: &config.DefaultsOps{HTTPOps: ops},
		settingsOps: &config.SettingsOps{HTTPOps: ops},
		urlOps:      &utils.URLOps{HTTPOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (h *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, h.requestsOps.GetTools()...)
	tools = append(tools, h.defaultsOps.GetTools()...)
	tools = append(tools, h.settingsOps.GetTools()...)
	tools = append(tools, h.urlOps.GetTools()...)

	return types.Service{
		ID:          "http",
		Name:        "HTTP Service",
		Description: "HTTP client with typed headers, URL building and percent-encoding",
		Category:    types.CategoryHTTP,
		Capabilities: []string{
			"requests", "get", "post", "json", "form",
			"headers", "redaction",
			"authentication", "basic", "bearer",
			"resilience", "retry", "rate-limiting",
			"url", "building", "parsing", "encoding", "escaping",
		},
		Tools: tools,
	}
}

// Execute routes to appropriate module
func (h *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	callID := id.NewCallID()
	timer := monitoring.NewTimer(h.client.Metrics(), toolID)
	result, err := h.execute(ctx, toolID, params, appCtx)

	status := "success"
	if err != nil || result == nil || !result.Success {
		status = "failure"
	}
	timer.Stop(status)

	fields := []zap.Field{
		zap.String("tool", toolID),
		zap.String("call_id", callID.String()),
		zap.String("status", status),
	}
	if appCtx != nil && appCtx.CallerID != nil {
		fields = append(fields, zap.String("caller", *appCtx.CallerID))
	}
	h.client.Logger().Debug("tool call", fields...)
	return result, err
}

func (h *Provider) execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	// Request operations
	case "http.get":
		return h.requestsOps.Get(ctx, params, appCtx)
	case "http.post":
		return h.requestsOps.Post(ctx, params, appCtx)

	// Default headers
	case "http.setHeader":
		return h.defaultsOps.SetHeader(ctx, params, appCtx)
	case "http.removeHeader":
		return h.defaultsOps.RemoveHeader(ctx, params, appCtx)
	case "http.getHeaders":
		return h.defaultsOps.GetHeaders(ctx, params, appCtx)
	case "http.setAuth":
		return h.defaultsOps.SetAuth(ctx, params, appCtx)
	case "http.clearAuth":
		return h.defaultsOps.ClearAuth(ctx, params, appCtx)

	// Transport settings
	case "http.configure":
		return h.settingsOps.Configure(ctx, params, appCtx)
	case "http.settings":
		return h.settingsOps.Current(ctx, params, appCtx)

	// URL operations
	case "http.buildURL":
		return h.urlOps.BuildURL(ctx, params, appCtx)
	case "http.parseURL":
		return h.urlOps.ParseURL(ctx, params, appCtx)
	case "http.joinPath":
		return h.urlOps.JoinPath(ctx, params, appCtx)
	case "http.encodeQuery":
		return h.urlOps.EncodeQuery(ctx, params, appCtx)
	case "http.decodeQuery":
		return h.urlOps.DecodeQuery(ctx, params, appCtx)
	case "http.escape":
		return h.urlOps.Escape(ctx, params, appCtx)

	default:
		msg := fmt.Sprintf("unknown tool: %s", toolID)
		return &types.Result{Success: false, Error: &msg}, nil
	}
}
