// SPDX-License-Identifier: MPL-2.0

// Package paths resolves the per-user filesystem locations a logging
// library writes to: home, application data root, per-application user data
// directory, log directory and temp directory.
//
// Resolution is a pure function of the platform family, the application
// name and the environment, so the same inputs always give the same paths.
// The rules are:
//
//	home     = override, else the OS home directory, else $HOME ($USERPROFILE on Windows)
//	appData  = macOS:   <home>/Library/Application Support
//	           Windows: %APPDATA%, else <home>\AppData\Roaming
//	           others:  $XDG_CONFIG_HOME, else <home>/.config
//	userData = <appData>/<appName>
//	logs     = macOS:   <home>/Library/Logs/<appName>
//	           others:  <userData>/logs
//	temp     = OS temp directory
//
// Joins use the separator of the resolved family, so a Windows layout can
// be computed (and tested) on any host.
package paths
