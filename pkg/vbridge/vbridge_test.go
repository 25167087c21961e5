package vbridge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vbridgekit/vbridge/pkg/vbridge"
)

func TestNewRuntime_ClosesCleanly(t *testing.T) {
	ctx := context.Background()
	rt := vbridge.NewRuntime(ctx, vbridge.Config{Variant: vbridge.VariantExtended})
	require.NoError(t, rt.Close(ctx))
}

func TestVariantConstants_HaveDistinctValues(t *testing.T) {
	require.NotEqual(t, vbridge.VariantMinimal, vbridge.VariantExtended)
}
