package partner

import (
	"errors"
	"testing"
)

func TestClassifyStatusCodes(t *testing.T) {
	err := classify("getUser", map[string]string{"partner_user_id": "18"}, &statusError{Status: 404, Message: "user not found"})
	if !errors.Is(err, ErrRejectedRequest) {
		t.Fatalf("4xx should classify as rejected, got %v", err)
	}
	var oe *OpError
	if !errors.As(err, &oe) || oe.Status != 404 {
		t.Fatalf("expected the status to be carried, got %v", err)
	}

	if err := classify("getUser", nil, &statusError{Status: 503}); !errors.Is(err, ErrTransportFailure) {
		t.Fatalf("5xx should classify as transport failure, got %v", err)
	}
	if err := classify("getUser", nil, errors.New("dial tcp: connection refused")); !errors.Is(err, ErrTransportFailure) {
		t.Fatalf("network errors should classify as transport failure, got %v", err)
	}
}

func TestClassifyPreservesExtractionSentinels(t *testing.T) {
	_, cause := onlyElement([]int{})
	err := classify("getWallet", nil, cause)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected the empty-result sentinel to survive, got %v", err)
	}
	if errors.Is(err, ErrTransportFailure) {
		t.Fatalf("an error must match exactly one taxonomy sentinel")
	}
}

func TestClassifyNil(t *testing.T) {
	if err := classify("op", nil, nil); err != nil {
		t.Fatalf("nil in, nil out: %v", err)
	}
}
