// SPDX-License-Identifier: MPL-2.0

// Package config loads the per-user configuration file (~/.artman/config.yaml
// by default) using Viper. The user config supplies host-specific values that
// do not belong in an API's artifact config: the local toolkit checkout and
// GitHub publishing credentials.
//
// A missing user config file is not an error; every field has a usable zero
// value. A present but malformed file is an error so a typo cannot silently
// downgrade a run to defaults.
package config
