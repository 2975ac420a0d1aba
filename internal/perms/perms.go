// Package perms provides the file and directory permissions used when baseconv writes to disk.
package perms

import "os"

const (
	// RegularFile is used for configuration and log files.
	// Mode 0644: owner read/write, group read, others read.
	RegularFile os.FileMode = 0o644

	// RegularDir is used for directories created to hold log files.
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	RegularDir os.FileMode = 0o755
)
