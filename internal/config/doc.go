// Package config defines the search cross-product and run parameters for
// leap-events.
//
// The compiled-in defaults cover five Southern California cities and four
// keywords; an optional YAML file can override either list. The API bearer
// token is resolved from a flag, the environment, or a local .env file.
package config
