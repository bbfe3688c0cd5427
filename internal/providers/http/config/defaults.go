package config

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/GriffinCanCode/httpdata/internal/providers/http/client"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/headers"
	"github.com/GriffinCanCode/httpdata/internal/shared/types"
)

// DefaultsOps edits the headers sent with every request.
type DefaultsOps struct {
	*client.HTTPOps
}

// authScheme renders the Authorization value of one scheme from tool params.
type authScheme struct {
	params []types.Parameter
	value  func(params map[string]interface{}) (string, error)
}

var authSchemes = map[string]authScheme{
	"basic": {
		params: []types.Parameter{
			{Name: "username", Type: "string", Description: "User name", Required: true},
			{Name: "password", Type: "string", Description: "Password", Required: true},
		},
		value: func(params map[string]interface{}) (string, error) {
			user, err := client.GetString(params, "username", true)
			if err != nil {
				return "", err
			}
			pass, err := client.GetString(params, "password", true)
			if err != nil {
				return "", err
			}
			return basicValue(user, pass), nil
		},
	},
	"bearer": {
		params: []types.Parameter{
			{Name: "token", Type: "string", Description: "Bearer token", Required: true},
		},
		value: func(params map[string]interface{}) (string, error) {
			token, err := client.GetString(params, "token", true)
			if err != nil {
				return "", err
			}
			return "Bearer " + token, nil
		},
	},
	"raw": {
		params: []types.Parameter{
			{Name: "value", Type: "string", Description: "Complete Authorization value", Required: true},
		},
		value: func(params map[string]interface{}) (string, error) {
			return client.GetString(params, "value", true)
		},
	},
}

func basicValue(user, pass string) string {
	return new(headers.Headers).SetBasicAuthentication(user, pass).Authorization()
}

func schemeNames() []string {
	names := make([]string, 0, len(authSchemes))
	for name := range authSchemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTools returns the default header tools.
func (d *DefaultsOps) GetTools() []types.Tool {
	authParams := []types.Parameter{
		{Name: "scheme", Type: "string", Description: "One of " + strings.Join(schemeNames(), ", "), Required: true},
	}
	for _, name := range schemeNames() {
		for _, p := range authSchemes[name].params {
			p.Required = false
			p.Description += " (" + name + ")"
			authParams = append(authParams, p)
		}
	}

	return []types.Tool{
		{
			ID:          "http.setHeader",
			Name:        "Set Default Header",
			Description: "Replace a header sent with every request; names are case-insensitive",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Description: "Header name", Required: true},
				{Name: "value", Type: "string", Description: "Header value", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "http.removeHeader",
			Name:        "Remove Default Header",
			Description: "Stop sending a header with every request",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Description: "Header name", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "http.getHeaders",
			Name:        "List Default Headers",
			Description: "Default headers as sent, credentials redacted unless the caller is verbose",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "http.setAuth",
			Name:        "Set Authorization",
			Description: "Set the default Authorization header",
			Parameters:  authParams,
			Returns:     "object",
		},
		{
			ID:          "http.clearAuth",
			Name:        "Clear Authorization",
			Description: "Remove the default Authorization header",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
	}
}

// SetHeader replaces one default header.
func (d *DefaultsOps) SetHeader(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	name, err := client.GetString(params, "name", true)
	if err != nil {
		return client.Failure(err.Error())
	}
	value, err := client.GetString(params, "value", false)
	if err != nil {
		return client.Failure(err.Error())
	}
	if err := d.Client.SetHeader(name, value); err != nil {
		return client.Failure(fmt.Sprintf("header %s: %v", name, err))
	}
	return d.listing(appCtx)
}

// RemoveHeader drops one default header.
func (d *DefaultsOps) RemoveHeader(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	name, err := client.GetString(params, "name", true)
	if err != nil {
		return client.Failure(err.Error())
	}
	d.Client.RemoveHeader(name)
	return d.listing(appCtx)
}

// GetHeaders lists the default headers.
func (d *DefaultsOps) GetHeaders(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return d.listing(appCtx)
}

// SetAuth installs the Authorization header of the requested scheme.
func (d *DefaultsOps) SetAuth(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	name, err := client.GetString(params, "scheme", true)
	if err != nil {
		return client.Failure(err.Error())
	}
	scheme, ok := authSchemes[name]
	if !ok {
		return client.Failure(fmt.Sprintf("unknown auth scheme %q (want %s)", name, strings.Join(schemeNames(), ", ")))
	}
	value, err := scheme.value(params)
	if err != nil {
		return client.Failure(fmt.Sprintf("%s auth: %v", name, err))
	}
	if err := d.Client.SetHeader("Authorization", value); err != nil {
		return client.Failure(err.Error())
	}
	return d.listing(appCtx)
}

// ClearAuth removes the Authorization header.
func (d *DefaultsOps) ClearAuth(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	d.Client.ClearAuth()
	return d.listing(appCtx)
}

// listing reports the default headers after a change.
func (d *DefaultsOps) listing(appCtx *types.Context) (*types.Result, error) {
	lines, err := d.Client.DefaultLines()
	if err != nil {
		return client.Failure(err.Error())
	}
	verbose := appCtx != nil && appCtx.VerboseHeaders
	hdrs := client.LinesToMap(lines, verbose)
	return client.Success(map[string]interface{}{
		"headers": hdrs,
		"count":   len(hdrs),
	})
}
