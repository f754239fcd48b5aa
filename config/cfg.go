package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"docrender/document"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	PageConfig struct {
		Size         string `yaml:"size" validate:"required"`
		MarginTop    string `yaml:"margin_top" validate:"required"`
		MarginRight  string `yaml:"margin_right" validate:"required"`
		MarginBottom string `yaml:"margin_bottom" validate:"required"`
		MarginLeft   string `yaml:"margin_left" validate:"required"`
	}

	ImagesConfig struct {
		Endpoint          string `yaml:"endpoint" validate:"required,contains={id}"`
		AllowExternalURLs bool   `yaml:"allow_external_urls"`
	}

	PlaceholdersConfig struct {
		Text     string `yaml:"text"`
		Image    string `yaml:"image"`
		Table    string `yaml:"table"`
		KeyValue string `yaml:"key_value"`
	}

	PhotosConfig struct {
		BlockID     string `yaml:"block_id" validate:"required"`
		GridStyleID string `yaml:"grid_style_id" validate:"required"`
	}

	LayoutConfig struct {
		// zero rows or columns let planner pick grid by number of photos
		Rows   int     `yaml:"rows" validate:"gte=0"`
		Cols   int     `yaml:"cols" validate:"gte=0"`
		Margin float64 `yaml:"margin" validate:"gte=0,lt=0.5"`
		Gap    float64 `yaml:"gap" validate:"gte=0,lt=1"`
	}

	RenderConfig struct {
		StylesheetPath        string             `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		OutputNameTemplate    string             `yaml:"output_name_template"`
		FileNameTransliterate bool               `yaml:"file_name_transliterate"`
		Workers               int                `yaml:"workers" validate:"gte=0,max=256"`
		Language              string             `yaml:"language" validate:"omitempty,bcp47_language_tag"`
		Page                  PageConfig         `yaml:"page"`
		Images                ImagesConfig       `yaml:"images"`
		Placeholders          PlaceholdersConfig `yaml:"placeholders"`
		Photos                PhotosConfig       `yaml:"photos"`
		Layout                LayoutConfig       `yaml:"layout"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Render    RenderConfig   `yaml:"render"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// PageOptions converts configured page into renderer defaults.
func (conf *PageConfig) PageOptions() document.PageOptions {
	return document.PageOptions{
		Size:         conf.Size,
		MarginTop:    conf.MarginTop,
		MarginRight:  conf.MarginRight,
		MarginBottom: conf.MarginBottom,
		MarginLeft:   conf.MarginLeft,
	}
}

// Grid returns configured slide grid, nil when planner should choose.
func (conf *LayoutConfig) Grid() *document.GridSize {
	if conf.Rows == 0 || conf.Cols == 0 {
		return nil
	}
	return &document.GridSize{Rows: conf.Rows, Cols: conf.Cols}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
