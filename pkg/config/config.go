// Package config holds the settings for the kymia commands. Values come,
// lowest priority first, from the defaults here, a YAML config file,
// KYMIA_ environment variables (KYMIA_READ_STRICT for read.strict) and
// command line flags bound by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/andrew-torda/kymia/pkg/atom"
	"github.com/andrew-torda/kymia/pkg/attype"
	"github.com/andrew-torda/kymia/pkg/strucfile"
)

const (
	envPrefix  = "KYMIA"
	configName = "kymia"
)

type Settings struct {
	Log struct {
		Dest  string // "", stdout, stderr or a file name
		Level string
	}
	Read struct {
		Strict    bool
		Format    string // pdb, pqr or empty to guess
		AllModels bool
	}
	Types struct {
		File string // YAML atom type table
	}
	Attype struct {
		Readers   int
		MaxFiles  int
		MaxBroken int
		Out       string
	}
	Fetch struct {
		Site string
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.dest", "stderr")
	v.SetDefault("log.level", "warn")
	v.SetDefault("read.strict", false)
	v.SetDefault("read.format", "")
	v.SetDefault("read.allmodels", false)
	v.SetDefault("types.file", "")
	v.SetDefault("attype.readers", 3)
	v.SetDefault("attype.maxfiles", 0)
	v.SetDefault("attype.maxbroken", 5)
	v.SetDefault("attype.out", "")
	v.SetDefault("fetch.site", "rcsb")
}

// New gives a viper with our defaults and environment variables wired in.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if there is one, and returns the settings.
// If fname is empty we look for kymia.yaml in the current directory and
// in ~/.config/kymia. Not finding one there is not an error, but a named
// file that cannot be read is.
func Load(v *viper.Viper, fname string) (*Settings, error) {
	if fname != "" {
		v.SetConfigFile(fname)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if fname != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) check() error {
	if s.Read.Format != "" && atom.ParseFormat(s.Read.Format) == atom.FormatUnknown {
		return fmt.Errorf("config: read.format %q is not pdb or pqr", s.Read.Format)
	}
	if _, err := strucfile.SiteNum(s.Fetch.Site); err != nil {
		return fmt.Errorf("config: fetch.site: %w", err)
	}
	if s.Attype.Readers < 1 {
		return fmt.Errorf("config: attype.readers must be at least 1, not %d", s.Attype.Readers)
	}
	return nil
}

// ReadOptions are the loader options these settings ask for.
func (s *Settings) ReadOptions(lg *slog.Logger) strucfile.Options {
	return strucfile.Options{
		Format:    atom.ParseFormat(s.Read.Format),
		Strict:    s.Read.Strict,
		AllModels: s.Read.AllModels,
		Logger:    lg,
	}
}

// SurveyOptions are the attype options these settings ask for.
func (s *Settings) SurveyOptions(lg *slog.Logger) attype.Options {
	return attype.Options{
		Readers:   s.Attype.Readers,
		MaxFiles:  s.Attype.MaxFiles,
		MaxBroken: s.Attype.MaxBroken,
		Read:      s.ReadOptions(lg),
		Logger:    lg,
	}
}

// SiteNum is the download site number for Fetch.Site. check has already
// made sure it exists.
func (s *Settings) SiteNum() int {
	n, _ := strucfile.SiteNum(s.Fetch.Site)
	return n
}
