// Package config loads service configuration with viper.
//
// Values are layered from lowest to highest precedence: the service's
// config.yml, the process environment (after any .env file is loaded), and
// finally --key=value command-line arguments. Environment variables are
// bound to nested keys automatically, so SERVER_PORT sets server.port and
// TWILIO_ACCOUNT_SID sets twilio.account_sid.
package config
