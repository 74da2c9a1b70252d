// Package types defines the core types and interfaces used throughout pacdec.
// This includes the Package and Category identities, the PackageSet used for
// tolerant membership checks, and the FS interface every component reads and
// writes declaration files through.
package types
