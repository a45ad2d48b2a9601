package config

import (
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/backmassage/autofocus/internal/errs"
)

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current value; unknown keys are an error.
//
//	digits: 5
//	format: tsv
//	workers: 4
//	chart: sharpness.svg
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.New(errs.KindConfig, path, "cannot read config file", err)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return errs.New(errs.KindConfig, path, "invalid config file", err)
	}
	return nil
}

// ApplyFile loads cfg.ConfigFile (if set) while keeping flags the user
// passed explicitly: defaults < file < flags. fs must already be parsed and
// bound to cfg.
func ApplyFile(fs *pflag.FlagSet, cfg *Config) error {
	if cfg.ConfigFile == "" {
		return nil
	}

	// Flag values live in cfg, so capture them before the file overwrites it.
	explicit := map[string]string{}
	fs.Visit(func(f *pflag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	if err := LoadFile(cfg.ConfigFile, cfg); err != nil {
		return err
	}

	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return errs.New(errs.KindConfig, cfg.ConfigFile, "re-applying --"+name, err)
		}
	}
	return nil
}
