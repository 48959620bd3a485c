// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the user config directory when set. Tests use
// it because os.UserConfigDir ignores a redirected HOME on some platforms.
var configDirOverride string

// Reset drops every override set through this file.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride makes ConfigDir return dir as is.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
