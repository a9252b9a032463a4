package config

import "go.uber.org/fx"

// Module provides *Config parsed from process flags, environment and the optional env file.
var Module = fx.Provide(Load)
