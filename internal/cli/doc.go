// Package cli parses the typed-builder command line into an app.Config.
package cli
