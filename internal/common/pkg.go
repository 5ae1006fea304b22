package common

import (
	"path"
	"strings"
)

// PkgAlias returns the name an import of pkgPath is assumed to bind: the
// last path element without a major version suffix, a "go-" prefix or
// anything after the first dot or dash. Returns empty string if pkgPath is
// empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(pkgPath))
	}

	base = strings.TrimPrefix(base, "go-")

	if i := strings.IndexAny(base, ".-"); i > 0 {
		base = base[:i]
	}

	return base
}

// isMajorVersion reports whether elem is a module major version suffix
// such as "v2".
func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' || elem[1] == '0' {
		return false
	}

	for _, r := range elem[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return elem != "v1"
}
