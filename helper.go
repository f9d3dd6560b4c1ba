package params

import "strings"

// flattenDoc converts a nested document (as produced by the TOML decoder)
// into a flat map of dot-joined paths to leaf values.
func flattenDoc(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			for subPath, subValue := range flattenDoc(sub, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}
	return flat
}

// setNested stores value in a nested document under a dot-joined path,
// creating intermediate maps as needed. A non-map intermediate is replaced.
func setNested(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// navigateDoc descends a nested document along a dot-joined base path. It
// returns nil when the path does not exist.
func navigateDoc(nested map[string]any, basePath string) any {
	basePath = strings.TrimSuffix(basePath, ".")
	if basePath == "" {
		return nested
	}

	var current any = nested
	for _, segment := range strings.Split(basePath, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[segment]
		if !ok {
			return nil
		}
	}
	return current
}
