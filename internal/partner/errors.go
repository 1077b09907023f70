package partner

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
)

// Error taxonomy for partner calls. Every error surfaced by the adapter
// matches exactly one of these sentinels under errors.Is.
var (
	// ErrEmptyResult occurs when a uniquely-keyed partner query returns zero records.
	ErrEmptyResult = errors.New("partner returned an empty result")

	// ErrAmbiguousResult occurs when a uniquely-keyed partner query returns more than one record.
	ErrAmbiguousResult = errors.New("partner returned more than one result")

	// ErrTransportFailure covers network errors, timeouts and partner 5xx responses.
	ErrTransportFailure = errors.New("partner transport failure")

	// ErrRejectedRequest covers partner 4xx responses: the request was malformed
	// or rejected by partner-side business rules.
	ErrRejectedRequest = errors.New("partner rejected the request")

	// ErrIneligibleBeneficiary indicates a local precondition failure, raised
	// before any network call is made.
	ErrIneligibleBeneficiary = errors.New("beneficiary is not reachable by sepa credit transfer")
)

// OpError annotates a classified failure with the operation name and its
// salient identifying arguments. Card PANs and PINs are never included.
type OpError struct {
	Op     string
	Kind   error
	Status int
	Fields map[string]string
	cause  error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+e.Fields[k])
		}
		b.WriteString(" [" + strings.Join(parts, " ") + "]")
	}
	if e.cause != nil {
		b.WriteString(": " + e.cause.Error())
	}
	return b.String()
}

func (e *OpError) Unwrap() error { return e.cause }

// Is reports membership in the taxonomy so callers can branch with errors.Is
// without inspecting the wrapped cause.
func (e *OpError) Is(target error) bool { return target == e.Kind }

// classify maps an outcome to the taxonomy. It never retries; retry policy
// belongs to the calling workflow.
func classify(op string, fields map[string]string, err error) error {
	if err == nil {
		return nil
	}

	oe := &OpError{Op: op, Fields: fields, cause: err}

	var se *statusError
	switch {
	case errors.Is(err, ErrEmptyResult):
		oe.Kind = ErrEmptyResult
	case errors.Is(err, ErrAmbiguousResult):
		oe.Kind = ErrAmbiguousResult
	case errors.As(err, &se):
		oe.Status = se.Status
		if se.Status >= 400 && se.Status < 500 {
			oe.Kind = ErrRejectedRequest
		} else {
			oe.Kind = ErrTransportFailure
		}
	default:
		// Network-level failures (DNS, connect, timeout) have no status.
		var ne net.Error
		_ = errors.As(err, &ne)
		oe.Kind = ErrTransportFailure
	}

	return oe
}

// HTTPStatus maps a classified error onto the status this service surfaces
// to its own callers. Partner rejections are the caller's problem (422);
// transport failures are not (502).
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyResult):
		return http.StatusNotFound
	case errors.Is(err, ErrAmbiguousResult):
		return http.StatusConflict
	case errors.Is(err, ErrRejectedRequest), errors.Is(err, ErrIneligibleBeneficiary):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTransportFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
