// Package device provides target device profiles.
//
// A [Profile] supplies the canvas size, safe margins and
// [geom.DeviceConstraints] of an e-ink tablet or a paper format. A [Registry]
// starts with the built-in profiles and can load more from TOML files, one
// profile per file.
package device
