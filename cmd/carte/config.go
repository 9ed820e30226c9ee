package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aretw0/carte/internal/platform"
)

const (
	envPrefix = "CARTE"

	cfgKeyDataDir = "data_dir"
	cfgKeyFormat  = "format"
	cfgKeyCascade = "cascade"

	flagDir     = "dir"
	flagFormat  = "format"
	flagCascade = "cascade"

	cascadeAsk = "ask"
	cascadeYes = "yes"
	cascadeNo  = "no"
)

// defaultConfigYAML is written by `carte init` next to the data files.
// The %s verb takes the file format.
const defaultConfigYAML = `# carte configuration

# Directory holding the category and dish files, relative to this file
data_dir: .

# File format: .json, .yaml, .xml or .csv
format: %s

# Answer to category cascades: ask, yes or no
cascade: ask
`

// flagKeys binds config keys to the root persistent flags.
var flagKeys = map[string]string{
	cfgKeyDataDir: flagDir,
	cfgKeyFormat:  flagFormat,
	cfgKeyCascade: flagCascade,
}

// addConfigFlags declares the flags loadConfig binds.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String(flagDir, ".", "data directory holding the category and dish files")
	flags.String(flagFormat, platform.DefaultFormat, "file format: .json, .yaml, .xml or .csv")
	flags.String(flagCascade, cascadeAsk, "answer to category cascades: ask, yes or no")
}

// loadConfig merges defaults, carte.yaml, CARTE_* env vars and flags, in
// increasing precedence. Without an explicit path the config is looked up
// with platform.FindRoot from the working directory; not finding one is
// not an error.
//
// A relative data_dir read from a config file is taken relative to that
// file.
func loadConfig(path string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDataDir, ".")
	v.SetDefault(cfgKeyFormat, platform.DefaultFormat)
	v.SetDefault(cfgKeyCascade, cascadeAsk)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path == "" {
		path = discoverConfig()
	}
	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dir := v.GetString(cfgKeyDataDir)
	if !filepath.IsAbs(dir) && !flagChanged(flags, flagDir) && os.Getenv(envPrefix+"_DATA_DIR") == "" {
		v.Set(cfgKeyDataDir, filepath.Join(filepath.Dir(path), dir))
	}
	return v, nil
}

func discoverConfig() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	root, err := platform.FindRoot(wd)
	if err != nil {
		return ""
	}
	path := filepath.Join(root, platform.ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// ensureDefaultConfigFile writes defaultConfigYAML into dir unless a
// config file is already there. It reports whether it wrote one.
func ensureDefaultConfigFile(dir, format string) (bool, error) {
	if format == "" {
		format = platform.DefaultFormat
	} else if !strings.HasPrefix(format, ".") {
		format = "." + format
	}

	path := filepath.Join(dir, platform.ConfigFileName)

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	content := fmt.Sprintf(defaultConfigYAML, format)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
