// Package filesystem holds the afero backend every package reads and writes through.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the current backend.
func API() afero.Afero {
	return backend
}

// Use replaces the backend with fs.
func Use(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}

// SetOsFs switches back to the real filesystem.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to a fresh in-memory filesystem. Config, logs and
// history written afterwards never touch the disk.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}
