package utils

import "strings"

// CaptureNameToStyleName maps tree-sitter capture names such as "keyword.control"
// to the general style name "keyword".
func CaptureNameToStyleName(captureName string) string {
	captureName = strings.TrimPrefix(captureName, "@")
	if dot := strings.Index(captureName, "."); dot != -1 {
		return captureName[:dot]
	}
	return captureName
}

// StyleClass returns the CSS class used for a style name.
func StyleClass(style string) string {
	return "hl-" + style
}
