// SPDX-License-Identifier: MPL-2.0

// Package config loads hostlog's own settings using Viper with CUE as the
// file format.
//
// The file is config.cue in the "hostlog" directory under the platform's
// application data root (the same root the environment strategies use for
// applications). It is validated against the embedded schema in
// config_schema.cue before being merged over the defaults; HOSTLOG_*
// environment variables override both.
package config
