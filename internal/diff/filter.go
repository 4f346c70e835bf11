package diff

import (
	"log"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesAny reports whether path matches any of the glob patterns. Patterns
// use doublestar syntax, so "**/*.pb.go" works as expected. A pattern with no
// path separator is also tried against the file's base name.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		if !containsSeparator(pattern) {
			if ok, err := doublestar.Match(pattern, filepath.Base(path)); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func containsSeparator(pattern string) bool {
	for _, r := range pattern {
		if r == '/' {
			return true
		}
	}
	return false
}

// Exclude removes files whose target path matches any exclude pattern.
// Deleted files are matched on their old path since their new path is the
// /dev/null sentinel.
func Exclude(files []File, patterns []string, logger *log.Logger) []File {
	if len(patterns) == 0 {
		return files
	}
	kept := files[:0:0]
	for _, f := range files {
		path := f.NewPath
		if path == DeletedFile {
			path = f.OldPath
		}
		if MatchesAny(path, patterns) {
			logf(logger, "diff: excluding %s (matched exclude pattern)", path)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
