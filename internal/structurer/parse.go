package structurer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseResponse decodes a raw model reply into a Result. It tolerates
// Markdown fences around the JSON and a single transaction object in
// place of a list, but malformed JSON is an error: the document aborts
// rather than committing partial records.
func ParseResponse(raw string) (*Result, error) {
	clean := cleanModelJSON(raw)

	var parsed interface{}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("ParseResponse: unmarshal JSON: %w", err)
	}

	pretty, err := json.MarshalIndent(parsed, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("ParseResponse: re-encode payload: %w", err)
	}

	items := transactionList(parsed)

	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			// Non-object elements carry no usable fields; an
			// all-default candidate keeps the element count honest.
			candidates = append(candidates, Candidate{})
			continue
		}
		candidates = append(candidates, candidateFromObject(obj))
	}

	return &Result{Raw: pretty, Candidates: candidates}, nil
}

// transactionList extracts the candidate list from the decoded payload.
// Accepted shapes: {"transactions": [...]}, a bare top-level array, or a
// single object (treated as a one-element list).
func transactionList(parsed interface{}) []interface{} {
	switch v := parsed.(type) {
	case map[string]interface{}:
		if txs, ok := v["transactions"]; ok {
			if list, ok := txs.([]interface{}); ok {
				return list
			}
			// "transactions" holding a single object.
			return []interface{}{txs}
		}
		// Whole payload is one transaction object.
		return []interface{}{v}
	case []interface{}:
		return v
	default:
		return nil
	}
}

// candidateFromObject coerces the raw fields of one model object into a
// Candidate. Missing or oddly-typed fields become empty strings; the
// normalizer owns default substitution.
func candidateFromObject(obj map[string]interface{}) Candidate {
	return Candidate{
		VendorName:  firstStringField(obj, "vendor_name", "vendor"),
		Date:        firstStringField(obj, "date"),
		Amount:      firstStringField(obj, "amount"),
		Currency:    firstStringField(obj, "currency"),
		Category:    firstStringField(obj, "category"),
		Description: firstStringField(obj, "description"),
	}
}

// firstStringField returns the first non-empty scalar among keys,
// rendered as a string.
func firstStringField(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if s := scalarToString(v); s != "" {
			return s
		}
	}
	return ""
}

func scalarToString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// cleanModelJSON strips Markdown fences and surrounding junk if the
// model ignored the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
