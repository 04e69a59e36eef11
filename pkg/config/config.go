package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lintang-b-s/navigatorx-ch/pkg/contractor"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/search"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

const (
	BackendBadger = "badger"
	BackendPebble = "pebble"
)

type Config struct {
	Contraction ContractionConfig `yaml:"contraction"`
	Store       StoreConfig       `yaml:"store"`
	Log         LogConfig         `yaml:"log"`
}

type ContractionConfig struct {
	HopLimit   int32            `yaml:"hop-limit" validate:"gte=1"`
	Priority   string           `yaml:"priority" validate:"omitempty,oneof=edge-difference experimental predetermined"`
	Heuristics HeuristicsConfig `yaml:"heuristics"`
}

type HeuristicsConfig struct {
	EdgeDiff    int64 `yaml:"edge-difference" validate:"gte=0"`
	Deleted     int64 `yaml:"deleted-neighbors" validate:"gte=0"`
	SearchSpace int64 `yaml:"search-space" validate:"gte=0"`
	Hub         int64 `yaml:"hub" validate:"gte=0"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" validate:"required,oneof=badger pebble"`
	Path    string `yaml:"path" validate:"required"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

func Default() Config {
	h := contractor.DefaultHeuristics()
	return Config{
		Contraction: ContractionConfig{
			HopLimit: search.DefaultHopLimit,
			Priority: string(contractor.EdgeDifference),
			Heuristics: HeuristicsConfig{
				EdgeDiff:    h.EdgeDiff,
				Deleted:     h.Deleted,
				SearchSpace: h.SearchSpace,
				Hub:         h.Hub,
			},
		},
		Store: StoreConfig{
			Backend: BackendBadger,
			Path:    "./navigatorx_ch_db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ReadConfig reads a yaml file on top of Default and validates the result.
func ReadConfig(file string) (Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, util.WrapErrorf(err, util.ErrConfig, "read config file %s", file)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, util.WrapErrorf(err, util.ErrConfig, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags and joins the translated messages into one ErrInvalidConfig.
func (c Config) Validate() error {
	validate := validator.New()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	msgs := make([]string, 0)
	for _, e := range translateError(err, trans) {
		msgs = append(msgs, e.Error())
	}
	return util.WrapErrorf(util.ErrInvalidConfig, util.ErrConfig, "%s", strings.Join(msgs, "; "))
}

func translateError(err error, trans ut.Translator) (errs []error) {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

func (c ContractionConfig) ToHeuristics() contractor.Heuristics {
	return contractor.Heuristics{
		EdgeDiff:    c.Heuristics.EdgeDiff,
		Deleted:     c.Heuristics.Deleted,
		SearchSpace: c.Heuristics.SearchSpace,
		Hub:         c.Heuristics.Hub,
	}
}

// Options turns the contraction section into build options.
func (c ContractionConfig) Options() ([]contractor.Option, error) {
	kind, err := contractor.ParsePriorityKind(c.Priority)
	if err != nil {
		return nil, util.WrapErrorf(util.ErrInvalidConfig, util.ErrConfig, "%v", err)
	}
	return []contractor.Option{
		contractor.WithPriority(kind),
		contractor.WithHopLimit(c.HopLimit),
		contractor.WithHeuristics(c.ToHeuristics()),
	}, nil
}

func NewLogger(c LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	lvl, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc.Level = lvl
	return zc.Build()
}
