// Package server renders site pages and serves them over HTTP.
//
// The same Server renders the pages served live by `mdsite serve` and the
// files written by `mdsite build`, so both outputs stay identical.
package server
