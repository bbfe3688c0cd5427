package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/httpdata/internal/infrastructure/config"
	"github.com/GriffinCanCode/httpdata/internal/logging"
	httpProvider "github.com/GriffinCanCode/httpdata/internal/providers/http"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/client"
	"github.com/GriffinCanCode/httpdata/internal/providers/http/headers"
	"github.com/GriffinCanCode/httpdata/internal/service"
	"github.com/GriffinCanCode/httpdata/internal/shared/types"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const usage = `usage: urlctl [-format json|yaml|toml] <command> [args]

commands:
  parse [-verbatim] <url>                       split a URL into components
  build [-path p] [-param k=v]... [-fragment f] <base>
  headers [-verbose]                            parse "Name: value" lines from stdin
  tools                                         list available tools
  call <tool> [json-params]                     run a tool
`

func main() {
	cfg := config.LoadOrDefault()
	logger, err := logging.New(logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(cfg, logger)
	if err := app.run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Debug("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "urlctl: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	registry *service.Registry
	verbose  bool
	log      *logging.Logger
}

func newApp(cfg *config.Config, logger *logging.Logger) *app {
	c := client.New(cfg.Client,
		client.WithLogger(logger),
		client.WithVerboseHeaders(cfg.Headers.VerboseLogging))

	registry := service.NewRegistry()
	// Only fails for an empty or dotted ID
	_ = registry.Register(httpProvider.NewProvider(c))

	return &app{
		registry: registry,
		verbose:  cfg.Headers.VerboseLogging,
		log:      logger.Component("urlctl"),
	}
}

func (a *app) run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("urlctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.String("format", "json", "Output format: json, yaml or toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return flag.ErrHelp
	}

	out, err := a.dispatch(ctx, fs.Arg(0), fs.Args()[1:], stdin)
	if err != nil {
		return err
	}
	data, err := render(out, *format)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string, stdin io.Reader) (map[string]interface{}, error) {
	switch cmd {
	case "parse":
		return a.parse(ctx, args)
	case "build":
		return a.build(ctx, args)
	case "headers":
		return a.headers(args, stdin)
	case "tools":
		return a.tools(), nil
	case "call":
		return a.call(ctx, args)
	default:
		return nil, fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) parse(ctx context.Context, args []string) (map[string]interface{}, error) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	verbatim := fs.Bool("verbatim", false, "Keep components undecoded")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.New("parse takes exactly one url")
	}
	return a.execute(ctx, "http.parseURL", map[string]interface{}{
		"url":      fs.Arg(0),
		"verbatim": *verbatim,
	})
}

// paramFlag collects repeated -param name=value flags.
type paramFlag map[string]interface{}

func (p paramFlag) String() string { return "" }

func (p paramFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("param %q must be name=value", s)
	}
	values, _ := p[name].([]interface{})
	p[name] = append(values, value)
	return nil
}

func (a *app) build(ctx context.Context, args []string) (map[string]interface{}, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("path", "", "Encoded path to append")
	fragment := fs.String("fragment", "", "Fragment")
	params := paramFlag{}
	fs.Var(params, "param", "Query parameter name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.New("build takes exactly one base url")
	}
	return a.execute(ctx, "http.buildURL", map[string]interface{}{
		"base":     fs.Arg(0),
		"path":     *path,
		"params":   map[string]interface{}(params),
		"fragment": *fragment,
	})
}

func (a *app) headers(args []string, stdin io.Reader) (map[string]interface{}, error) {
	fs := flag.NewFlagSet("headers", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	verbose := fs.Bool("verbose", a.verbose, "Show credential headers")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var lines []headers.Line
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		name, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, fmt.Errorf("header line %q has no ':'", text)
		}
		lines = append(lines, headers.Line{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}

	h := headers.New()
	if err := h.FromWireLines(lines); err != nil {
		return nil, err
	}
	parsed, err := h.ToWireLines()
	if err != nil {
		return nil, err
	}
	curl, err := h.CurlFlags(*verbose)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"headers": client.LinesToMap(parsed, *verbose),
		"count":   len(parsed),
		"curl":    strings.TrimSpace(curl),
	}, nil
}

func (a *app) tools() map[string]interface{} {
	var tools []map[string]interface{}
	for _, svc := range a.registry.List(nil) {
		for _, tool := range svc.Tools {
			tools = append(tools, map[string]interface{}{
				"id":          tool.ID,
				"description": tool.Description,
			})
		}
	}
	return map[string]interface{}{"tools": tools}
}

func (a *app) call(ctx context.Context, args []string) (map[string]interface{}, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, errors.New("call takes a tool id and optional json params")
	}
	if _, ok := a.registry.Tool(args[0]); !ok {
		return nil, fmt.Errorf("unknown tool %q", args[0])
	}
	params := map[string]interface{}{}
	if len(args) == 2 {
		if err := sonic.UnmarshalString(args[1], &params); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
	}
	return a.execute(ctx, args[0], params)
}

func (a *app) execute(ctx context.Context, toolID string, params map[string]interface{}) (map[string]interface{}, error) {
	result, err := a.registry.Execute(ctx, toolID, params, &types.Context{VerboseHeaders: a.verbose})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("%s: %s", toolID, *result.Error)
	}
	a.log.Debug("tool executed", zap.String("tool", toolID))
	return result.Data, nil
}
