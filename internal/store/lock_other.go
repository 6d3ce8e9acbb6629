//go:build !unix

package store

import "os"

// No advisory locking outside unix; concurrent writers may lose updates.
func lockFile(*os.File, bool) error { return nil }

func unlockFile(*os.File) error { return nil }
