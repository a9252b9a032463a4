package router

import "go.uber.org/fx"

// Module provides the gin engine serving /healthz and the authenticated /api group.
var Module = fx.Provide(Setup)
