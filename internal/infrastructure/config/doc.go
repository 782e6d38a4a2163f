// Package config loads navd configuration from environment variables.
//
// Every setting has a default, so a bare `navd` starts with a home root page
// on :8000. Environment variables:
//
//	PORT, HOST                 HTTP listener
//	NAV_ROOT                   root page kind (default "home")
//	NAV_MANIFEST               optional path to a YAML page manifest
//	LOG_LEVEL, LOG_DEV         logging
//	RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
