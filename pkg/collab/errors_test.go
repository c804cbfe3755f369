package collab_test

import (
	"errors"
	"testing"

	"github.com/pal9000i/arb-engine/pkg/collab"
)

func TestEngineErrorMessageWithAndWithoutCause(t *testing.T) {
	withoutCause := collab.NewEngineError(collab.KindEmptyTicks, "no ticks", nil)
	if got := withoutCause.Error(); got != "EmptyTicks: no ticks" {
		t.Fatalf("unexpected message: %q", got)
	}

	cause := errors.New("dial tcp: timeout")
	withCause := collab.NewEngineError(collab.KindTransportFailure, "rpc call failed", cause)
	if got := withCause.Error(); got != "TransportFailure: rpc call failed: dial tcp: timeout" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestEngineErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := collab.NewEngineError(collab.KindParseFailure, "bad address", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}

func TestEngineErrorFatalOnlyForConfig(t *testing.T) {
	if !collab.NewEngineError(collab.KindConfig, "missing env var", nil).Fatal() {
		t.Fatal("KindConfig should be fatal")
	}
	nonFatalKinds := []collab.Kind{
		collab.KindTransportFailure,
		collab.KindContractCallRevert,
		collab.KindInvalidPriceLimit,
		collab.KindNonPositiveAmount,
		collab.KindEmptyTicks,
		collab.KindBridgeUnavailable,
		collab.KindParseFailure,
	}
	for _, k := range nonFatalKinds {
		if collab.NewEngineError(k, "x", nil).Fatal() {
			t.Fatalf("kind %s should not be fatal", k)
		}
	}
}
