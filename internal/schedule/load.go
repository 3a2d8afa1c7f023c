package schedule

import (
	_ "embed"
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed schedule.yaml
var defaultSchedule []byte

// document is the on-disk shape of a schedule file.
type document struct {
	Version       string                       `koanf:"version" validate:"required"`
	Timezone      string                       `koanf:"timezone" validate:"required"`
	BufferMinutes int                          `koanf:"buffer_minutes" validate:"gte=0,lte=120"`
	Halls         map[string]map[string]string `koanf:"halls" validate:"required,min=1,dive,min=1"`
}

// rawBytes serves an in-memory YAML document to koanf.
type rawBytes []byte

func (b rawBytes) ReadBytes() ([]byte, error) { return b, nil }

func (b rawBytes) Read() (map[string]interface{}, error) {
	return nil, errors.New("schedule: raw bytes provider does not support Read")
}

// Default returns the schedule compiled into the binary.
func Default() (*Schedule, error) {
	return Load("")
}

// Load reads the compiled-in schedule and, when path is set, merges the file at
// path over it. A file may replace windows or add halls and meals.
func Load(path string) (*Schedule, error) {
	// hall names may contain dots
	k := koanf.New("|")
	if err := k.Load(rawBytes(defaultSchedule), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse default schedule: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load schedule file %s: %w", path, err)
		}
	}
	return build(k)
}

// Parse builds a schedule from a single YAML document.
func Parse(data []byte) (*Schedule, error) {
	k := koanf.New("|")
	if err := k.Load(rawBytes(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse schedule: %w", err)
	}
	return build(k)
}

func build(k *koanf.Koanf) (*Schedule, error) {
	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}

	loc, err := time.LoadLocation(doc.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", doc.Timezone, err)
	}

	var errs []error
	halls := make([]Hall, 0, len(doc.Halls))
	for hallName, meals := range doc.Halls {
		hall := Hall{Name: hallName}
		for mealName, raw := range meals {
			w, err := ParseWindow(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s / %s: %w", hallName, mealName, err))
				continue
			}
			hall.Meals = append(hall.Meals, Meal{Name: mealName, Window: w})
		}
		halls = append(halls, hall)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid schedule windows: %w", errors.Join(errs...))
	}

	return New(doc.Version, loc, time.Duration(doc.BufferMinutes)*time.Minute, halls), nil
}
