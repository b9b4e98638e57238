// Package outputs names the on-disk verifying-key file (.lvk) a full Leo
// toolchain writes after synthesis, without ever serializing or parsing it
// itself. Writing the .lvk file format is
// the out-of-scope external collaborator's job; this package only fixes the
// naming convention so a driver and a test fixture agree on where to look.
package outputs

import "path/filepath"

// VerificationKeyExtension is the on-disk suffix for a Leo verifying key.
const VerificationKeyExtension = ".lvk"

// VerificationKeyPath returns the conventional path a package named
// pkgName's verifying key is written to, relative to a build output
// directory. The engine never opens this path itself; a driver that does
// real proving-key serialization (out of scope here) is the only writer.
func VerificationKeyPath(dir, pkgName string) string {
	return filepath.Join(dir, pkgName+VerificationKeyExtension)
}
