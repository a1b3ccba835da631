package helpers

import (
	"regexp"
	"strings"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:[a-zA-Z]+)?\\s*\\n?(.*?)```")

// ExtractJSONBlock returns the body of the first fenced code block in a model
// reply, or the whole trimmed reply when there is none.
func ExtractJSONBlock(reply string) string {
	if match := fencedBlock.FindStringSubmatch(reply); match != nil {
		return strings.TrimSpace(match[1])
	}
	return strings.TrimSpace(reply)
}
