package gdelt

import "fmt"

// Endpoint names one GDELT API family.
type Endpoint string

const (
	EndpointDoc Endpoint = "DOC"
	EndpointGeo Endpoint = "GEO"
)

// RemoteAPIError is returned when the API answers with a non-2xx status.
type RemoteAPIError struct {
	Endpoint   Endpoint
	StatusCode int
	Status     string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("GDELT %s API error: %s", e.Endpoint, e.Status)
}

// TransportError wraps a network, DNS or timeout failure.
type TransportError struct {
	Endpoint Endpoint
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch from GDELT %s API: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not JSON, or whose shape does
// not match the variant expected for the request mode.
type DecodeError struct {
	Mode Mode
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Mode == "" {
		return fmt.Sprintf("decode GDELT response: %v", e.Err)
	}
	return fmt.Sprintf("decode GDELT %s response: %v", e.Mode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
