// Package protocol encodes commands into the OFS line protocol and classifies
// the service's response text.
//
// A request is one line: the verb and its arguments joined by '|' and
// terminated by '\n'. Responses start with "OK|" or "ERR|"; anything else is a
// raw payload such as a listing or a tree dump.
package protocol

import (
	"fmt"
	"strings"

	"ofsconsole/internal/domain"
)

const (
	FieldSeparator = "|"
	LineTerminator = "\n"

	FailurePrefix = "ERR" + FieldSeparator
	SuccessPrefix = "OK" + FieldSeparator
)

// DenialPhrases are matched case-insensitively against unprefixed responses
var DenialPhrases = []string{
	"ACCESS DENIED",
	"PERMISSION DENIED",
	"NOT AUTHORIZED",
}

// Encode renders a command as a single protocol line.
// Fields containing the separator or a line break are rejected because the
// wire format has no escaping.
func Encode(cmd domain.Command) ([]byte, error) {
	name := string(cmd.Name())
	if name == "" {
		return nil, &domain.EncodingError{Field: -1, Reason: "empty verb"}
	}
	if reason := invalidField(name); reason != "" {
		return nil, &domain.EncodingError{Field: -1, Reason: reason}
	}

	args := cmd.Args()
	for i, arg := range args {
		if reason := invalidField(arg); reason != "" {
			return nil, &domain.EncodingError{Field: i, Reason: reason}
		}
	}

	var b strings.Builder
	b.WriteString(name)
	for _, arg := range args {
		b.WriteString(FieldSeparator)
		b.WriteString(arg)
	}
	b.WriteString(LineTerminator)
	return []byte(b.String()), nil
}

func invalidField(s string) string {
	switch {
	case strings.Contains(s, LineTerminator):
		return "contains a line feed"
	case strings.Contains(s, "\r"):
		return "contains a carriage return"
	case strings.Contains(s, FieldSeparator):
		return fmt.Sprintf("contains the field separator %q", FieldSeparator)
	}
	return ""
}

// Decode parses one request line back into a Command.
// The trailing line terminator is optional.
func Decode(line string) (domain.Command, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return domain.Command{}, &domain.EncodingError{Field: -1, Reason: "empty line"}
	}
	parts := strings.Split(line, FieldSeparator)
	if parts[0] == "" {
		return domain.Command{}, &domain.EncodingError{Field: -1, Reason: "empty verb"}
	}
	return domain.NewCommand(domain.Verb(parts[0]), parts[1:]...), nil
}

// Classify turns a response into an Outcome.
// Marker prefixes win over keyword scanning, so an "ERR|" payload that
// mentions a denial phrase stays a Failure with the phrase intact.
func Classify(response string) domain.Outcome {
	text := strings.TrimSpace(response)

	if rest, ok := strings.CutPrefix(text, SuccessPrefix); ok {
		return domain.Success(rest)
	}
	if rest, ok := strings.CutPrefix(text, FailurePrefix); ok {
		return domain.Failure(rest)
	}

	upper := strings.ToUpper(text)
	for _, phrase := range DenialPhrases {
		if strings.Contains(upper, phrase) {
			return domain.AccessDenied(text)
		}
	}
	return domain.Raw(text)
}
