package api

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// bodyDecoder keeps JSON numbers as json.Number so ids beyond 2^53 survive re-encoding.
var bodyDecoder = sonic.Config{UseNumber: true}.Froze()

// successCode is the application-level success marker. The backend sends it as a string.
const successCode = "200"

// Response is the normalized result of one backend call.
//
// A transport failure has StatusCode == nil and Error set. An HTTP or application-level
// failure has StatusCode set, Success false and no Error.
type Response struct {
	Success     bool    `json:"success"`
	StatusCode  *int    `json:"status_code"`
	Data        any     `json:"data"`
	RawResponse *string `json:"raw_response,omitempty"`
	Error       *string `json:"error,omitempty"`
}

// TransportFailed reports whether the call never produced an HTTP response.
func (r Response) TransportFailed() bool {
	return r.StatusCode == nil
}

// Object returns Data as a JSON object when it is one.
func (r Response) Object() (map[string]any, bool) {
	obj, ok := r.Data.(map[string]any)
	return obj, ok
}

// Code returns the body's "code" field when present and a string.
func (r Response) Code() (string, bool) {
	obj, ok := r.Object()
	if !ok {
		return "", false
	}
	code, ok := obj["code"].(string)
	return code, ok
}

// ParsedBody is a successfully decoded JSON body. Value may be any JSON value, including nil
// for a literal null. Numbers are json.Number.
type ParsedBody struct {
	Value any
}

// parseBody decodes raw as JSON. The false branch is the "malformed body" path: the caller keeps
// the raw text and leaves Data empty.
func parseBody(raw []byte) (ParsedBody, bool) {
	if len(raw) == 0 {
		return ParsedBody{}, false
	}
	var v any
	if err := bodyDecoder.Unmarshal(raw, &v); err != nil {
		return ParsedBody{}, false
	}
	return ParsedBody{Value: v}, true
}

// isSuccess requires HTTP 200 and, when the body is an object carrying "code", code == "200".
func isSuccess(status int, body ParsedBody, parsed bool) bool {
	if status != http.StatusOK {
		return false
	}
	if !parsed {
		return true
	}
	obj, ok := body.Value.(map[string]any)
	if !ok {
		return true
	}
	code, present := obj["code"]
	if !present {
		return true
	}
	s, isString := code.(string)
	return isString && s == successCode
}

func httpResponse(status int, raw []byte) Response {
	body, parsed := parseBody(raw)
	text := string(raw)
	resp := Response{
		Success:     isSuccess(status, body, parsed),
		StatusCode:  &status,
		RawResponse: &text,
	}
	if parsed {
		resp.Data = body.Value
	}
	return resp
}

func transportFailure(err error) Response {
	msg := err.Error()
	return Response{
		Success: false,
		Error:   &msg,
	}
}
