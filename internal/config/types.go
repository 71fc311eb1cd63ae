// SPDX-License-Identifier: MPL-2.0

package config

type (
	// UserConfig is the parsed per-user configuration. All fields are
	// optional; the zero value is a valid config.
	UserConfig struct {
		// Local holds host-machine paths.
		Local LocalConfig `json:"local" mapstructure:"local"`

		// GitHub holds publishing credentials.
		GitHub GitHubConfig `json:"github" mapstructure:"github"`
	}

	// LocalConfig holds host-machine paths for local execution.
	LocalConfig struct {
		// Toolkit is the path to a local toolkit checkout. When set, local
		// runs invoke this checkout instead of skipping generation stages.
		Toolkit string `json:"toolkit" mapstructure:"toolkit"`
	}

	// GitHubConfig holds credentials used when publishing generated
	// packages to GitHub. The token is a secret; anything that renders
	// resolved arguments must redact it.
	GitHubConfig struct {
		// Username is the GitHub account name.
		Username string `json:"username" mapstructure:"username"`
		// Token is a personal access token.
		Token string `json:"token" mapstructure:"token"`
	}
)

// DefaultUserConfig returns the configuration used when no user config file
// exists.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{}
}
