package dto

import (
	"testing"
	"time"

	ierr "github.com/ekko-ai/agentgate/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestsRequestToParams(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

	request := GetRequestsRequest{
		RequestID:  "req_01HGXYZABCDEF",
		AgentType:  "contenu",
		Capability: "blog-writing",
		Status:     "failed",
		Endpoint:   "/api/content",
		StartTime:  now.Add(-time.Hour),
		EndTime:    now,
		PageSize:   25,
		Offset:     50,
		CountTotal: true,
	}

	params := request.ToParams()
	assert.Equal(t, "req_01HGXYZABCDEF", params.RequestID)
	assert.Equal(t, "contenu", params.AgentType)
	assert.Equal(t, "blog-writing", params.Capability)
	assert.Equal(t, "failed", params.Status)
	assert.Equal(t, "/api/content", params.Endpoint)
	assert.Equal(t, 25, params.PageSize)
	assert.Equal(t, 50, params.Offset)
	assert.True(t, params.CountTotal)
	assert.Nil(t, params.IterFirst)
	assert.Nil(t, params.IterLast)
}

func TestGetRequestsRequestIteratorMapping(t *testing.T) {
	ts := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)

	// Both halves of the composite key are required for a keyset cursor
	partial := GetRequestsRequest{IterFirstTimestamp: &ts}
	assert.Nil(t, partial.ToParams().IterFirst)

	full := GetRequestsRequest{
		IterFirstTimestamp: &ts,
		IterFirstID:        "evt_abc",
		IterLastTimestamp:  &ts,
		IterLastID:         "evt_xyz",
	}
	params := full.ToParams()
	require.NotNil(t, params.IterFirst)
	assert.Equal(t, ts, params.IterFirst.Timestamp)
	assert.Equal(t, "evt_abc", params.IterFirst.ID)
	require.NotNil(t, params.IterLast)
	assert.Equal(t, "evt_xyz", params.IterLast.ID)
}

func TestGetRequestsRequestValidate(t *testing.T) {
	require.NoError(t, (&GetRequestsRequest{PageSize: 100}).Validate())

	err := (&GetRequestsRequest{PageSize: 1001}).Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	err = (&GetRequestsRequest{Offset: -1}).Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
