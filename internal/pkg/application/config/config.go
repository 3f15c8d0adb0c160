package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/diwise/idmc-opendata/internal/pkg/domain"
	"gopkg.in/yaml.v2"
)

type Indicator struct {
	Key         string `yaml:"key"`
	MetadataURL string `yaml:"metadata_url"`
}

type Country struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

//Config is the project configuration of the IDMC pipeline
type Config struct {
	DisplacementURL     string      `yaml:"displacement_url"`
	DisasterURL         string      `yaml:"disaster_url"`
	Indicators          []Indicator `yaml:"indicators"`
	Maintainer          string      `yaml:"maintainer"`
	OwnerOrg            string      `yaml:"owner_org"`
	DataUpdateFrequency string      `yaml:"data_update_frequency"`
	VocabularyID        string      `yaml:"vocabulary_id"`
	Tags                []string    `yaml:"tags"`
	Countries           []Country   `yaml:"countries"`
}

func Load(input io.Reader) (*Config, error) {
	buf, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg := &Config{}
	if err = yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.DataUpdateFrequency == "" {
		cfg.DataUpdateFrequency = "365"
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.DisplacementURL == "" || c.DisasterURL == "" {
		return errors.New("both displacement_url and disaster_url must be configured")
	}

	if len(c.Indicators) != 2 {
		return fmt.Errorf("expected two indicators (displacement and disaster), found %d", len(c.Indicators))
	}

	for _, i := range c.Indicators {
		if i.Key == "" || i.MetadataURL == "" {
			return errors.New("every indicator needs a key and a metadata_url")
		}
	}

	return nil
}

func (c *Config) Publisher() domain.Publisher {
	tags := make([]domain.Tag, 0, len(c.Tags))
	for _, t := range c.Tags {
		tags = append(tags, domain.Tag{Name: strings.ToLower(t), VocabularyID: c.VocabularyID})
	}

	return domain.Publisher{
		Maintainer:          c.Maintainer,
		OwnerOrg:            c.OwnerOrg,
		DataUpdateFrequency: c.DataUpdateFrequency,
		Tags:                tags,
	}
}

func (c *Config) CountryNames() map[string]string {
	names := make(map[string]string, len(c.Countries))
	for _, country := range c.Countries {
		names[country.Code] = country.Name
	}
	return names
}
