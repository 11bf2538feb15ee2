package loader

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// TOMLParser parses TOML.
type TOMLParser struct{}

// Format returns "toml".
func (TOMLParser) Format() string { return "toml" }

// Parse implements Parser.
func (TOMLParser) Parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return config, nil
}

// YAMLParser parses YAML.
type YAMLParser struct{}

// Format returns "yaml".
func (YAMLParser) Format() string { return "yaml" }

var yamlLine = regexp.MustCompile(`line (\d+)`)

// Parse implements Parser.
func (YAMLParser) Parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			pe.Line, _ = strconv.Atoi(m[1])
		}
		return nil, pe
	}
	return config, nil
}

// JSONParser parses JSON.
type JSONParser struct{}

// Format returns "json".
func (JSONParser) Format() string { return "json" }

// Parse implements Parser.
func (JSONParser) Parse(source string, data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, &ParseError{Path: source, Message: fmt.Sprintf("expected an object, got %s", result.Type)}
	}
	config, _ := result.Value().(map[string]any)
	return config, nil
}
