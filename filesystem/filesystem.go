// Package filesystem holds the afero backend every package reads and writes through.
//
// Production runs on the OS filesystem. Tests switch to an in-memory one.
package filesystem

import "github.com/spf13/afero"

var (
	backend = afero.Afero{Fs: afero.NewOsFs()}
	onDisk  = true
)

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetOsFs switches to the OS filesystem.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
	onDisk = true
}

// SetMemMapFs switches to a fresh in-memory filesystem.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
	onDisk = false
}

// Set switches to the given filesystem, wrappers over the active backend included.
func Set(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
	_, onDisk = fs.(*afero.OsFs)
}

// OnDisk reports whether the backend is the OS filesystem. External programs,
// such as ffmpeg, only see files written while it is.
func OnDisk() bool {
	return onDisk
}
