// Package app wires the application together: configuration, logging,
// workspace loading, and the configuration pass over all declared modules.
//
// An App owns its logger and identity registry, so two App instances never
// share state; that keeps integration tests isolated and lets independent
// passes run side by side.
package app
