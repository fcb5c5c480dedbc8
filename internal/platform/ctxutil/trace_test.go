package ctxutil

import (
	"context"
	"testing"
)

func TestTraceDataRoundTrip(t *testing.T) {
	if got := GetTraceData(context.Background()); got != nil {
		t.Fatalf("empty context: got %+v", got)
	}
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	got := GetTraceData(context.WithoutCancel(ctx))
	if got == nil || got.TraceID != "t1" || got.RequestID != "r1" {
		t.Fatalf("got %+v", got)
	}
}
