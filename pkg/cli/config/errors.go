package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound = goerr.New("configuration file not found")
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrInvalidCases   = goerr.New("invalid case set")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	CaseIndexKey  = "case_index"
)
