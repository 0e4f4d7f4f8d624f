package monitoring

import (
	"strings"
)

// getSegmentName turns a runtime function name like
// "github.com/rupiksha/go-ppob-transaction/internal/services.(*submitter).Submit"
// into "services.submitter.Submit".
func getSegmentName(fullFuncName string) string {
	if idx := strings.LastIndex(fullFuncName, "/"); idx >= 0 {
		fullFuncName = fullFuncName[idx+1:]
	}

	parts := strings.Split(fullFuncName, ".")
	for i, part := range parts {
		parts[i] = strings.Trim(part, "(*)")
	}

	var kept []string
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	if len(kept) == 0 {
		return fullFuncName
	}

	return strings.Join(kept, ".")
}
