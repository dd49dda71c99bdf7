package config

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path"

	"gopkg.in/yaml.v2"
)

const (
	configDir  string = ".leb128"
	configFile string = "config.yml"
)

// OutputFormat selects how decoded values and encodings are printed.
type OutputFormat string

const (
	// Hex prints bytes and values in hexadecimal.
	Hex OutputFormat = "hex"
	// Dec prints values in decimal and bytes in hexadecimal.
	Dec OutputFormat = "dec"
	// Bin prints bytes as groups of bits with the continuation bit
	// separated from the payload.
	Bin OutputFormat = "bin"
)

// ColorMode selects when dump output is highlighted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config defines all configuration options available to be set through the config file.
type Config struct {
	// OutputFormat is one of hex, dec or bin. Defaults to dec.
	OutputFormat OutputFormat `yaml:"output-format,omitempty"`

	// ByteSeparator is printed between the bytes of an encoding.
	// Defaults to a single space.
	ByteSeparator *string `yaml:"byte-separator,omitempty"`

	// If BigInts is true values are decoded with arbitrary precision
	// instead of failing when they do not fit in 64 bits.
	BigInts bool `yaml:"big-ints"`

	// Color controls highlighting of continuation bytes in dump output.
	Color ColorMode `yaml:"color,omitempty"`
}

// Format returns the configured output format, or Dec.
func (c *Config) Format() OutputFormat {
	switch c.OutputFormat {
	case Hex, Bin:
		return c.OutputFormat
	}
	return Dec
}

// Separator returns the configured byte separator.
func (c *Config) Separator() string {
	if c.ByteSeparator == nil {
		return " "
	}
	return *c.ByteSeparator
}

// ColorMode returns the configured color mode, or ColorAuto.
func (c *Config) ColorMode() ColorMode {
	switch c.Color {
	case ColorAlways, ColorNever:
		return c.Color
	}
	return ColorAuto
}

// Validate reports unknown values for enumerated settings.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", Hex, Dec, Bin:
	default:
		return fmt.Errorf("unknown output-format %q", c.OutputFormat)
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q", c.Color)
	}
	return nil
}

// LoadConfig attempts to populate a Config object from the config.yml file.
func LoadConfig() *Config {
	err := createConfigPath()
	if err != nil {
		fmt.Printf("Could not create config directory: %v.", err)
		return &Config{}
	}
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		fmt.Printf("Unable to get config file path: %v.", err)
		return &Config{}
	}

	if _, err := os.Stat(fullConfigFile); err != nil {
		f, err := createDefaultConfig(fullConfigFile)
		if err != nil {
			fmt.Printf("Error creating default config file: %v", err)
			return &Config{}
		}
		f.Close()
	}

	c, err := LoadConfigFrom(fullConfigFile)
	if err != nil {
		fmt.Printf("%v.", err)
		return &Config{}
	}
	return c
}

// LoadConfigFrom reads the configuration stored at path.
func LoadConfigFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("unable to read config data: %v", err)
	}

	var c Config
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to decode config file: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %v", path, err)
	}
	return &c, nil
}

// SaveConfig will marshal and save the config struct
// to disk.
func SaveConfig(conf *Config) error {
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		return err
	}
	return SaveConfigTo(conf, fullConfigFile)
}

// SaveConfigTo marshals conf into the file at path.
func SaveConfigTo(conf *Config, path string) error {
	out, err := yaml.Marshal(*conf)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(out)
	return err
}

func createDefaultConfig(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create config file: %v", err)
	}
	err = writeDefaultConfig(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to write default configuration: %v", err)
	}
	return f, nil
}

func writeDefaultConfig(f io.StringWriter) error {
	_, err := f.WriteString(
		`# Configuration file for the leb128 tool.

# This is the default configuration file. Available options are provided, but disabled.
# Delete the leading hash mark to enable an item.

# How values are printed: dec, hex or bin.
# output-format: dec

# String printed between the bytes of an encoding.
# byte-separator: " "

# Decode with arbitrary precision instead of failing on values wider than 64 bits.
# big-ints: true

# Highlight continuation bytes in dump output: auto, always or never.
# color: auto
`)
	return err
}

// createConfigPath creates the directory structure at which all config files are saved.
func createConfigPath() error {
	path, err := GetConfigFilePath("")
	if err != nil {
		return err
	}
	return os.MkdirAll(path, 0700)
}

// GetConfigFilePath gets the full path to the given config file name.
func GetConfigFilePath(file string) (string, error) {
	if configPath := os.Getenv("LEB128_CONFIG_DIR"); configPath != "" {
		return path.Join(configPath, file), nil
	}

	userHomeDir := "."
	usr, err := user.Current()
	if err == nil {
		userHomeDir = usr.HomeDir
	}
	return path.Join(userHomeDir, configDir, file), nil
}
