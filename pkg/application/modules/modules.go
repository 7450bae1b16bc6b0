// Package modules runs long-lived servers inside an errgroup and stops them
// when the group context is cancelled.
package modules

import "rate_audit/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
