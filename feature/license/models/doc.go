// Package models defines the license record as received from the remote API and
// the row it is stored as.
package models
