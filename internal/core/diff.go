package core

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// GenerateDiff renders a line diff between the guest's current content and
// the bundled asset, prefixing lines with "+ ", "- " or two spaces.
// Identical inputs produce an empty string.
func GenerateDiff(name, current, desired string) string {
	if current == desired {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, c := dmp.DiffLinesToChars(current, desired)
	diffs := dmp.DiffMain(a, b, false)
	result := dmp.DiffCharsToLines(diffs, c)

	var buff bytes.Buffer
	buff.WriteString("--- " + name + "\n")
	for _, diff := range result {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.Split(diff.Text, "\n") {
			if line == "" {
				continue
			}
			buff.WriteString(prefix + line + "\n")
		}
	}
	return buff.String()
}
