// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Values may also come from a .env file loaded with LoadEnvFile before Load.
//
// Components read their settings through the Lookup interface using dotted keys
// such as "services.binance.base_url".
package config
