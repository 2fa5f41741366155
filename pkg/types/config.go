package types

// Config holds store parameters for Store.Open.
type Config struct {
	// DBPath is the path of the SQLite database file. Empty means
	// DefaultDBName in the current directory.
	DBPath string `json:"db_path" yaml:"db_path"`

	// LegacyDir is the directory searched for legacy JSON data files by the
	// import operations. Empty means the current directory.
	LegacyDir string `json:"legacy_dir" yaml:"legacy_dir"`
}

// DefaultDBName is the database filename used when Config.DBPath is empty.
const DefaultDBName = "satchel.db"

// Path returns the effective database file path.
func (c Config) Path() string {
	if c.DBPath == "" {
		return DefaultDBName
	}
	return c.DBPath
}
