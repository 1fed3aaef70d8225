//go:build tools

package fluxbridge

import (
	_ "github.com/influxdata/pkg-config"
)
