// Package dto contains the Spotify Web API response shapes and their
// conversion into model types.
package dto
