package compose

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/xeipuuv/gojsonschema"

	"github.com/aditya/slidein/internal/llm"
)

// ParseError reports model output from which no subject/body pair could be
// recovered by any strategy.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "could not parse subject and body from model response"
}

// draftSchema pins the strict-parse contract: both fields present, both
// non-empty strings.
const draftSchema = `{
	"type": "object",
	"required": ["subject", "body"],
	"properties": {
		"subject": {"type": "string", "minLength": 1},
		"body": {"type": "string", "minLength": 1}
	}
}`

var draftSchemaLoader = gojsonschema.NewStringLoader(draftSchema)

// parseStrategy attempts one way of reading a draft out of model output.
type parseStrategy func(text string) (*Draft, bool)

// parseStrategies are tried in order. The regex recovery tier exists because
// the model's output format is not contractually guaranteed.
var parseStrategies = []parseStrategy{
	parseStrictJSON,
	parseRegexRecovery,
}

// ParseDraft strips code fences and runs the parse strategies in order.
func ParseDraft(text string) (*Draft, error) {
	cleaned := llm.CleanJSONBlock(text)
	for _, strategy := range parseStrategies {
		if draft, ok := strategy(cleaned); ok {
			return draft, nil
		}
	}
	return nil, &ParseError{Raw: text}
}

// parseStrictJSON requires well-formed JSON that satisfies the draft schema.
func parseStrictJSON(text string) (*Draft, bool) {
	result, err := gojsonschema.Validate(draftSchemaLoader, gojsonschema.NewStringLoader(text))
	if err != nil || !result.Valid() {
		return nil, false
	}

	var draft Draft
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		return nil, false
	}
	return &draft, true
}

var (
	subjectFieldRE = regexp.MustCompile(`"subject"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	bodyFieldRE    = regexp.MustCompile(`"body"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// parseRegexRecovery pulls the subject and body fields out of malformed
// near-JSON. Both must be present.
func parseRegexRecovery(text string) (*Draft, bool) {
	subjectMatch := subjectFieldRE.FindStringSubmatch(text)
	bodyMatch := bodyFieldRE.FindStringSubmatch(text)
	if subjectMatch == nil || bodyMatch == nil {
		return nil, false
	}

	subject := unescapeJSONString(subjectMatch[1])
	body := unescapeJSONString(bodyMatch[1])
	if subject == "" || body == "" {
		return nil, false
	}
	return &Draft{Subject: subject, Body: body}, true
}

// unescapeJSONString interprets JSON string escapes in a captured field
// value, falling back to the raw capture if it is not valid on its own.
func unescapeJSONString(s string) string {
	unquoted, err := strconv.Unquote(fmt.Sprintf(`"%s"`, s))
	if err != nil {
		return s
	}
	return unquoted
}
