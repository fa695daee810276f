// Package server exposes fetch metrics over HTTP in the Prometheus text
// format. The endpoint is optional and only started when a listen address is
// configured.
package server
