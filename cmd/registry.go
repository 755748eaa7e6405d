package cmd

import (
	"econfeed/feature/sources"
	"econfeed/feature/sources/bls"
	"econfeed/feature/sources/ecb"
	"econfeed/feature/sources/fred"
	"econfeed/feature/sources/imf"
	"econfeed/feature/sources/worldbank"
)

// newRegistry wires every agency adapter. Adapters missing a credential stay
// registered so catalog requests can report them as unconfigured.
func newRegistry(cfg sources.Config) *sources.Registry {
	registry := sources.NewRegistry()
	registry.Register(bls.New(cfg))
	registry.Register(fred.New(cfg))
	registry.Register(ecb.New(cfg))
	registry.Register(worldbank.New(cfg))
	registry.Register(imf.New(cfg))
	return registry
}
