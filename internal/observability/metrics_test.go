package observability

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/protocol/record"
	"github.com/danmuck/disctl/internal/protocol/wire"
	"github.com/danmuck/disctl/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)

	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("GET", "/health", 200, 12*time.Millisecond)
	RecordDatagram(144)
	RecordEncoded(pdu.TypeFire, 96)
}

func TestRecordDecodedCountsByTypeAndFamily(t *testing.T) {
	testlog.Start(t)

	counter := pduDecoded.WithLabelValues("EntityState", "EntityInformation")
	before := testutil.ToFloat64(counter)
	RecordDecoded(pdu.Header{PduType: pdu.TypeEntityState, ProtocolFamily: pdu.FamilyEntityInformation})
	RecordDecoded(pdu.Header{PduType: pdu.TypeEntityState, ProtocolFamily: pdu.FamilyEntityInformation})
	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("expected 2 decoded, got %v", got)
	}
}

func TestDecodeErrorReason(t *testing.T) {
	testlog.Start(t)

	cases := map[string]error{
		"unknown_type":      &pdu.UnknownTypeError{Type: 200},
		"invalid_length":    fmt.Errorf("%w: short", pdu.ErrInvalidLength),
		"too_large":         pdu.ErrPduTooLarge,
		"too_many_elements": &record.FieldError{Path: "items", Err: record.ErrTooManyElements},
		"truncated":         &record.FieldError{Path: "a.b", Err: &wire.TruncatedError{Offset: 3, Want: 4}},
		"other":             errors.New("boom"),
	}
	for want, err := range cases {
		if got := DecodeErrorReason(err); got != want {
			t.Fatalf("%v: expected %q, got %q", err, want, got)
		}
	}

	before := testutil.ToFloat64(pduDecodeErrors.WithLabelValues("truncated"))
	RecordDecodeError(wire.ErrTruncated)
	if got := testutil.ToFloat64(pduDecodeErrors.WithLabelValues("truncated")) - before; got != 1 {
		t.Fatalf("expected one truncated error, got %v", got)
	}
}
