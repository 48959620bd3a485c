// SPDX-License-Identifier: MPL-2.0

// Package config loads composer settings using Viper with CUE as the file format.
//
// The file is looked up, in order, at the path given by --config, at
// $XDG_CONFIG_HOME/composer/config.cue (platform equivalents on macOS and
// Windows), and at ./composer.cue. Missing files are not an error: every key
// has a default. Any key can be overridden through a COMPOSER_ environment
// variable, with dots replaced by underscores (COMPOSER_SYNTAX_INTERNAL_PREFIX).
//
// Files are validated against the embedded config_schema.cue before they are
// merged into Viper.
package config
