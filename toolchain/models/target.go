package models

import (
	"path/filepath"
	"strings"
)

// WatchTarget is the source file being watched and the directory that receives
// the derived artifacts. Both paths are absolute and fixed for the process lifetime.
type WatchTarget struct {
	SourcePath      string
	OutputDirectory string
}

// BaseName returns the source file name without its extension, e.g. "paper".
func (t WatchTarget) BaseName() string {
	name := filepath.Base(t.SourcePath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// SourceExt returns the source extension including the dot, e.g. ".tex".
func (t WatchTarget) SourceExt() string {
	return filepath.Ext(t.SourcePath)
}

// SourceDir is the directory that contains the source file.
func (t WatchTarget) SourceDir() string {
	return filepath.Dir(t.SourcePath)
}

// AuxPath is the compiler's cross-reference file inside the output directory.
func (t WatchTarget) AuxPath() string {
	return filepath.Join(t.OutputDirectory, t.BaseName()+".aux")
}

// OutputPath is the derived document for the given extension ("pdf" or ".pdf").
func (t WatchTarget) OutputPath(ext string) string {
	return filepath.Join(t.OutputDirectory, t.BaseName()+"."+strings.TrimPrefix(ext, "."))
}
