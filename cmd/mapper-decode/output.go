package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arkieguy/RAK4631-Helium-Mapper/pkg/mapper"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type document struct {
	Driver    string         `yaml:"driver"`
	Format    string         `yaml:"format"`
	Port      int            `yaml:"port"`
	ByteCount int            `yaml:"byte_count"`
	RawHex    string         `yaml:"raw_hex"`
	Fields    map[string]any `yaml:"fields,omitempty"`
}

func render(out io.Writer, result mapper.Result, format string) error {
	switch format {
	case outputYAML:
		data, err := yaml.Marshal(document{
			Driver:    result.Driver,
			Format:    result.Format,
			Port:      result.Port,
			ByteCount: result.ByteCount,
			RawHex:    result.RawHex,
			Fields:    result.Fields,
		})
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	default:
		_, err := fmt.Fprintln(out, result.String())
		return err
	}
}
