// Package config loads and validates the sunwatch configuration file.
// Settings come from a JSON file merged over defaults; secrets (the
// weather API key, HTTP credentials) come from the environment.
package config
