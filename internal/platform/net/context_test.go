package net

import (
	"context"
	"testing"
)

func TestWithRequest(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1", "biz-7")
	if RequestID(ctx) != "req-1" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}
	if BusinessID(ctx) != "biz-7" {
		t.Fatalf("BusinessID = %q", BusinessID(ctx))
	}
}

func TestWithRequest_EmptyValuesLeaveContextAlone(t *testing.T) {
	base := context.Background()
	ctx := WithRequest(base, "", "")
	if ctx != base {
		t.Fatalf("expected the same context back")
	}
	if RequestID(ctx) != "" || BusinessID(ctx) != "" {
		t.Fatalf("expected empty ids")
	}
}
