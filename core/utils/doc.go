// Package utils converts loosely typed values from request bodies and remote
// payloads, where numbers may arrive as JSON numbers or as strings.
package utils
