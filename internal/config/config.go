// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/diegolsarmond/custom-proposal-maker/assets"
	"github.com/diegolsarmond/custom-proposal-maker/doctpl"
)

// Config is the runtime configuration shared by the binaries.
type Config struct {
	// Company fills blank company fields of incoming documents.
	Company doctpl.CompanyConfig
	// Assets overrides the image sources by name.
	Assets assets.Sources

	OutputDir   string
	Stationery  string
	LogLevel    string
	MetricsAddr string
	Environment string
	NodeID      int64
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Company: doctpl.CompanyConfig{
			Name:    "Quantum Tecnologia",
			Address: "Rua Antônio de Albuquerque, 330 - Sala 901, BH/MG",
			Phone:   "(31) 99305-4200",
			Website: "www.quantumtecnologia.com.br",
		},
		Assets:    assets.Sources{},
		OutputDir: ".",
		LogLevel:  "info",
		NodeID:    1,
	}
}

// Load reads envFile when it exists and then applies PROPOSAL_* variables
// over the defaults. A blank envFile means ".env". Variables already set in
// the environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if strings.TrimSpace(envFile) == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv applies PROPOSAL_* variables over the defaults.
func FromEnv() (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	str("PROPOSAL_COMPANY_NAME", &cfg.Company.Name)
	str("PROPOSAL_COMPANY_ADDRESS", &cfg.Company.Address)
	str("PROPOSAL_COMPANY_PHONE", &cfg.Company.Phone)
	str("PROPOSAL_COMPANY_EMAIL", &cfg.Company.Email)
	str("PROPOSAL_COMPANY_WEBSITE", &cfg.Company.Website)
	str("PROPOSAL_COMPANY_RESPONSIBLE", &cfg.Company.Responsible)
	str("PROPOSAL_OUTPUT_DIR", &cfg.OutputDir)
	str("PROPOSAL_STATIONERY", &cfg.Stationery)
	str("PROPOSAL_LOG_LEVEL", &cfg.LogLevel)
	str("PROPOSAL_METRICS_ADDR", &cfg.MetricsAddr)
	str("PROPOSAL_ENV", &cfg.Environment)

	for key, name := range map[string]string{
		"PROPOSAL_LOGO":          assets.Logo,
		"PROPOSAL_ICON_PHONE":    assets.Phone,
		"PROPOSAL_ICON_LOCATION": assets.Location,
		"PROPOSAL_ICON_GLOBE":    assets.Globe,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			cfg.Assets[name] = v
		}
	}

	if node := strings.TrimSpace(os.Getenv("PROPOSAL_NODE_ID")); node != "" {
		value, err := strconv.ParseInt(node, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse PROPOSAL_NODE_ID: %w", err)
		}
		if value < 0 || value > 1023 {
			return Config{}, fmt.Errorf("PROPOSAL_NODE_ID must be between 0 and 1023, got %d", value)
		}
		cfg.NodeID = value
	}
	return cfg, nil
}
