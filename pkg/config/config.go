package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"yawm/pkg/keymaps"
)

// Config holds the application configuration
type Config struct {
	Database   string            `mapstructure:"database" json:"database"`
	KeyMap     map[string]string `mapstructure:"keymap" json:"keymap"`
	StylesFile string            `mapstructure:"styles_file" json:"styles_file"`
	City       string            `mapstructure:"city" json:"city"`
	Country    string            `mapstructure:"country" json:"country"`
	HourHeight int               `mapstructure:"hour_height" json:"hour_height"`
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor string `json:"border_color"`
	AccentColor string `json:"accent_color"`

	// Text colors
	NormalTextColor   string `json:"normal_text_color"`
	SelectedTextColor string `json:"selected_text_color"`
	SelectedBgColor   string `json:"selected_bg_color"`
	ErrorColor        string `json:"error_color"`

	// Timeline colors
	PrayerColor      string `json:"prayer_color"`
	SegmentBandColor string `json:"segment_band_color"`
	NowLineColor     string `json:"now_line_color"`

	// Built-in block type colors; user types from the database are
	// merged over these at render time
	TypeColors map[string]string `json:"type_colors"`
}

// Load loads the application configuration from the specified path
func Load(configPath string) (Config, Styles, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, Styles{}, err
	}

	configDir := filepath.Join(homeDir, ".config", "yawm")

	// Default configuration using keymaps package
	defaults := Config{
		Database:   filepath.Join(configDir, "plans.db"),
		KeyMap:     keymaps.GetDefaultKeyMappings(),
		StylesFile: filepath.Join(configDir, "styles.json"),
		City:       "Lyon",
		Country:    "France",
		HourHeight: 3,
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("database", defaults.Database)
	v.SetDefault("keymap", defaults.KeyMap)
	v.SetDefault("styles_file", defaults.StylesFile)
	v.SetDefault("city", defaults.City)
	v.SetDefault("country", defaults.Country)
	v.SetDefault("hour_height", defaults.HourHeight)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return defaults, Styles{}, err
		}
		// Config file not found, create it with the defaults
		if configPath == "" {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return defaults, Styles{}, err
			}
			if err := v.WriteConfigAs(filepath.Join(configDir, "config.json")); err != nil {
				return defaults, Styles{}, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return defaults, Styles{}, err
	}

	// Now load the styles file
	styles, err := loadStyles(config.StylesFile)
	if err != nil {
		return config, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return config, styles, nil
}

// DefaultStyles returns the built-in color scheme
func DefaultStyles() Styles {
	return Styles{
		BorderColor:       "240",
		AccentColor:       "205",
		NormalTextColor:   "86",
		SelectedTextColor: "229",
		SelectedBgColor:   "57",
		ErrorColor:        "9",
		PrayerColor:       "#22a845",
		SegmentBandColor:  "236",
		NowLineColor:      "#dc2626",
		TypeColors: map[string]string{
			"prayer":    "#22a845",
			"spiritual": "#ca8a04",
			"course":    "#2563eb",
			"study":     "#0891b2",
			"work":      "#b45309",
			"project":   "#7c3aed",
			"sport":     "#dc2626",
			"therapy":   "#db2777",
			"rest":      "#64748b",
			"neutral":   "#a3a3a3",
		},
	}
}

// loadStyles loads the application styles from the specified path
func loadStyles(stylesPath string) (Styles, error) {
	defaultStyles := DefaultStyles()

	// Try to read the styles file
	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		// If the file doesn't exist, create it with default values
		if os.IsNotExist(err) {
			stylesDir := filepath.Dir(stylesPath)
			if err := os.MkdirAll(stylesDir, 0755); err != nil {
				return defaultStyles, err
			}

			stylesData, err = json.MarshalIndent(defaultStyles, "", "  ")
			if err != nil {
				return defaultStyles, err
			}

			if err := os.WriteFile(stylesPath, stylesData, 0644); err != nil {
				return defaultStyles, err
			}

			return defaultStyles, nil
		}
		return defaultStyles, err
	}

	// File exists, parse it
	var loadedStyles Styles
	if err := json.Unmarshal(stylesData, &loadedStyles); err != nil {
		return defaultStyles, err
	}

	// Missing type colors fall back to the built-ins so a hand-edited
	// styles file doesn't silently drop categories
	if loadedStyles.TypeColors == nil {
		loadedStyles.TypeColors = defaultStyles.TypeColors
	} else {
		for k, c := range defaultStyles.TypeColors {
			if _, ok := loadedStyles.TypeColors[k]; !ok {
				loadedStyles.TypeColors[k] = c
			}
		}
	}

	return loadedStyles, nil
}
