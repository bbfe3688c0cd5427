package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// render encodes a command result in the requested output format.
func render(v map[string]interface{}, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json", "":
		data, err = sonic.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml", "yml":
		data, err = yaml.Marshal(v)
	case "toml":
		data, err = toml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported format: %s (must be json, yaml or toml)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return data, nil
}
