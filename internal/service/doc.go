// Package service provides the registry that routes tool calls to providers.
//
// Tool IDs have the form "<service>.<tool>"; the part before the first dot
// selects the provider registered under that service ID.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(http.NewProvider(nil))
//	result, err := registry.Execute(ctx, "http.parseURL", params, appCtx)
package service
