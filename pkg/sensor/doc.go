// Package sensor drives the fingerprint sensor board over a serial line.
package sensor

// The board prints a ready marker once the sensor initialized, then
// accepts one command per line and answers with a line of text.
//
// Every read or write opens its own port handle. Writes toggle DTR
// first, which resets boards that auto-reset on connect, so a command
// is never sent into a half-initialized sketch.
