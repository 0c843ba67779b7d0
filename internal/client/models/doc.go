// Package models holds the Card and User records exchanged with the
// directory backend, their boundary decoders and the form validation rules.
package models
