// Package extract pulls labeled values out of the text of uploaded
// documents. It is used to pre-fill a project's required helper count from
// the staffing planning document; the value it returns is untrusted and must
// be validated by the caller.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var separators = regexp.MustCompile(`[:\s]+`)

// LabeledValue scans the document text line by line and returns the value
// following the first occurrence of label. The second return is false when
// the label is absent or carries no value.
func LabeledValue(document []byte, label string) (string, bool) {
	if label == "" {
		return "", false
	}

	for _, line := range strings.Split(string(document), "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.Contains(line, label) {
			continue
		}

		value := strings.TrimSpace(strings.Replace(line, label, "", 1))
		value = strings.TrimSpace(separators.ReplaceAllString(value, " "))
		if value == "" {
			return "", false
		}
		return value, true
	}

	return "", false
}

// HelperCount extracts the labeled value and parses it as a non-negative
// integer helper count.
func HelperCount(document []byte, label string) (int, error) {
	raw, ok := LabeledValue(document, label)
	if !ok {
		return 0, fmt.Errorf("label %q not found in document", label)
	}

	// The value may be followed by trailing text on the same line.
	first := strings.Fields(raw)[0]
	count, err := strconv.Atoi(first)
	if err != nil {
		return 0, fmt.Errorf("value %q for label %q is not an integer", first, label)
	}
	if count < 0 {
		return 0, fmt.Errorf("helper count must not be negative, got %d", count)
	}

	return count, nil
}
