package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/savorly/savorly-server/internal/http/response"
)

// EnvelopeTransformer wraps every API response in the versioned envelope:
//
//	{"v": 1, "success": true, "data": ...}
//	{"v": 1, "success": false, "error": "...", "code": "...", "message": "...", "details": ...}
//
// Clients key on "v" and "success"; the field names are a wire contract.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil {
		code = 500
	}
	success := code < 400

	envelope := map[string]any{
		"v":       response.EnvelopeVersion,
		"success": success,
	}

	if apiErr, ok := v.(*APIError); ok {
		envelope["success"] = false
		envelope["error"] = apiErr.Message
		if apiErr.Code != "" {
			envelope["code"] = apiErr.Code
			envelope["message"] = apiErr.Message
		}
		if apiErr.Details != nil {
			envelope["details"] = apiErr.Details
		}
		return envelope, nil
	}

	if !success {
		if e, ok := v.(error); ok {
			envelope["error"] = e.Error()
			return envelope, nil
		}
	}

	if v != nil {
		envelope["data"] = v
	}

	return envelope, nil
}
