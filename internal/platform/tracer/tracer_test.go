package tracer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenpass/internal/platform/tracer"
)

func TestNoopTracer(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanValidate, tracer.String(tracer.AttrMode, "3G"))
	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Bool(tracer.AttrVerified, true))
	span.AddEvent(tracer.EventRevocationHit, tracer.Int64("count", 1))
	span.End(errors.New("boom"))
}

func TestOTelTracerUsesGlobalProvider(t *testing.T) {
	tr := tracer.NewOTel()
	_, span := tr.Start(context.Background(), tracer.SpanRules,
		tracer.String(tracer.AttrKind, "vaccination"),
		tracer.Int64(tracer.AttrRuleCount, 3),
	)
	require.NotNil(t, span)
	span.End(nil)
}

func TestHashIdentifier(t *testing.T) {
	assert.Empty(t, tracer.HashIdentifier(""))
	a := tracer.HashIdentifier("URN:UVCI:01:IT:ABC#1")
	assert.Len(t, a, 16)
	assert.Equal(t, a, tracer.HashIdentifier("URN:UVCI:01:IT:ABC#1"))
	assert.NotEqual(t, a, tracer.HashIdentifier("URN:UVCI:01:IT:ABC#2"))
}
