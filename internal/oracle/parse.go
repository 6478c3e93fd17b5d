package oracle

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/ltrinh/afmorph/internal/af"
)

// jsonBlockPattern finds the JSON object even when the model wraps it in
// prose or code fences.
var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseExtensions coerces a raw oracle response into an extension family.
// Any failure is a *SchemaError: a missing JSON block, undecodable JSON,
// non-string members, or a key set other than exactly {GE, CE, PE, SE}.
func ParseExtensions(raw string) (af.ExtensionFamily, error) {
	block := jsonBlockPattern.FindString(raw)
	if block == "" {
		return nil, &SchemaError{Reason: "no JSON object found in the response", Raw: raw}
	}

	var decoded map[string][][]string
	if err := json.Unmarshal([]byte(block), &decoded); err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("failed to decode JSON: %v", err), Raw: raw}
	}

	family := make(af.ExtensionFamily, len(af.AllSemantics))
	for _, tag := range af.AllSemantics {
		exts, ok := decoded[string(tag)]
		if !ok {
			return nil, &SchemaError{Reason: fmt.Sprintf("missing %s key", tag), Raw: raw}
		}
		out := make([]af.Extension, len(exts))
		for i, ext := range exts {
			out[i] = af.Extension(ext)
		}
		family[tag] = out
	}

	if len(decoded) != len(af.AllSemantics) {
		return nil, &SchemaError{
			Reason: fmt.Sprintf("expected exactly the keys GE, CE, PE, SE, got %d keys", len(decoded)),
			Raw:    raw,
		}
	}

	return family, nil
}
