// Package cli holds the logic behind the markov subcommands, kept apart from cobra
// so it can be tested without a process boundary.
package cli
