// Package config loads typed application configuration from the environment.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Fields tagged
// `env:"NAME,required"` make Load fail when the variable is missing, which is
// how the storefront refuses to start without backend credentials.
//
// Parsed structs are cached per type for the life of the process; tests can
// call ResetCache between cases.
package config
