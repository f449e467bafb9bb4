package types

import "errors"

// Config holds store location and export parameters for opening a catalog.
type Config struct {
	DBFile    string `json:"db_file" yaml:"db_file"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Config validation errors.
var (
	ErrDBFileEmpty = errors.New("db_file must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DBFile == "" {
		return ErrDBFileEmpty
	}
	return nil
}
