package jar

import "strings"

// pathMatches reports whether a cookie with cookiePath is visible on
// requestPath.
func pathMatches(requestPath, cookiePath string) bool {
	requestPath = normalizePath(requestPath)
	cookiePath = normalizePath(cookiePath)
	if cookiePath == "/" {
		return true
	}
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	if cookiePath[len(cookiePath)-1] == '/' {
		return true
	}
	return len(requestPath) > len(cookiePath) && requestPath[len(cookiePath)] == '/'
}

// defaultPath is the path a cookie gets when the assignment names none:
// the directory of the document path.
func defaultPath(documentPath string) string {
	if documentPath == "" || documentPath[0] != '/' {
		return "/"
	}
	i := strings.LastIndexByte(documentPath, '/')
	if i == 0 {
		return "/"
	}
	return documentPath[:i]
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path[0] != '/' {
		return "/"
	}
	return path
}
