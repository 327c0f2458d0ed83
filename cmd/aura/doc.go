// Package main hosts the Aura CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the Aura backend, asset cache maintenance, log tailing, and
// configuration inspection. It centralizes config resolution, client
// construction, and theme selection in a shared command context so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
