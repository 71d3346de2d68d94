package config

import (
	"fmt"

	"github.com/cognicore/topictrans/pkg/topictrans/translate"
)

// Loader loads a translation configuration and the weight files it names.
type Loader struct {
	TranslatePath string
	// WeightsAPath and WeightsBPath override the weight files named in the
	// ngram blocks.
	WeightsAPath string
	WeightsBPath string
}

// Components holds the loaded configuration.
type Components struct {
	File      *TranslateFile
	Translate translate.Config
}

// Load reads all configuration files and returns a ready translate.Config.
func (l *Loader) Load() (*Components, error) {
	tf := DefaultTranslateFile()
	if l.TranslatePath != "" {
		var err error
		tf, err = LoadTranslateFile(l.TranslatePath)
		if err != nil {
			return nil, fmt.Errorf("load translate config: %w", err)
		}
	}

	cfg, err := tf.Build()
	if err != nil {
		return nil, fmt.Errorf("build translate config: %w", err)
	}

	if err := loadWeights(cfg.NGramA, tf.NGramA, l.WeightsAPath); err != nil {
		return nil, fmt.Errorf("load ngram_a weights: %w", err)
	}
	if err := loadWeights(cfg.NGramB, tf.NGramB, l.WeightsBPath); err != nil {
		return nil, fmt.Errorf("load ngram_b weights: %w", err)
	}

	return &Components{File: tf, Translate: cfg}, nil
}

func loadWeights(dst *translate.NGramWeights, file *NGramFile, override string) error {
	if dst == nil {
		return nil
	}
	path := override
	if path == "" {
		path = file.Weights
	}
	if path == "" {
		return nil
	}
	weights, err := LoadWeights(path)
	if err != nil {
		return err
	}
	dst.Weights = weights
	return nil
}
