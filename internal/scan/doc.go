// Package scan enumerates document files beneath a root directory,
// producing the FileRecords the rest of the pipeline consumes.
package scan
