package helpers

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// ToDataURL encodes raw image bytes the way a browser capture would.
func ToDataURL(data []byte) string {
	mimeType := http.DetectContentType(data)
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsBlank reports whether s has no content other than whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
