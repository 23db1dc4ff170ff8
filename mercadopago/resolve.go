package mercadopago

import "encoding/json"

// errorBody is the shape MercadoPago uses for rejections.
type errorBody struct {
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Status  int          `json:"status"`
	Cause   []ErrorCause `json:"cause"`
}

// Resolve classifies a raw response into exactly one typed outcome:
//
//   - 2xx with a body matching out           -> nil, out populated
//   - 2xx with a body that fails to parse    -> *MalformedSuccessError
//   - 4xx with a documented error body       -> *APIError
//   - 4xx with an unparseable body           -> *MalformedErrorResponse
//   - >= 500                                 -> *ServerError
//
// A nil out discards the success body. Resolve holds no state across
// calls.
func Resolve(resp *Response, out any) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return &MalformedSuccessError{Status: resp.StatusCode, Body: resp.Body, Err: err}
		}
		return nil

	case resp.StatusCode >= 500:
		return &ServerError{Status: resp.StatusCode}

	default:
		var eb errorBody
		if err := json.Unmarshal(resp.Body, &eb); err != nil {
			return &MalformedErrorResponse{Status: resp.StatusCode, Body: resp.Body, Err: err}
		}
		if eb.Message == "" && eb.Error == "" {
			return &MalformedErrorResponse{Status: resp.StatusCode, Body: resp.Body}
		}
		return &APIError{
			Status:  resp.StatusCode,
			Code:    eb.Error,
			Message: eb.Message,
			Cause:   eb.Cause,
		}
	}
}
