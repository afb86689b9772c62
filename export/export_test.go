package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payments-engine/engine"
	"github.com/warp/payments-engine/export"
)

func TestWrite_AccountTable(t *testing.T) {
	accounts := []engine.AccountSnapshot{
		{
			Client:    1,
			Available: engine.MustAmount("100"),
			Held:      engine.MustAmount("0"),
			Total:     engine.MustAmount("100"),
			Locked:    false,
		},
		{
			Client:    2,
			Available: engine.MustAmount("-50"),
			Held:      engine.MustAmount("0"),
			Total:     engine.MustAmount("-50"),
			Locked:    true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, accounts))

	want := "client,available,held,total,locked\n" +
		"1,100.0000,0.0000,100.0000,false\n" +
		"2,-50.0000,0.0000,-50.0000,true\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_EmptySnapshotStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, nil))
	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}
