// Package config manages user-level settings stored at ~/.pytoapk/config.yaml.
// It provides functions to load, read, and write the tool settings: the
// Android SDK location, the git executable, the skeleton repository and the
// directories used for skeleton checkouts and builds.
package config
