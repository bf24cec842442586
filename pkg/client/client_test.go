package client

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ied-protocol/ied-go/pkg/log"
	"github.com/ied-protocol/ied-go/pkg/model"
	"github.com/ied-protocol/ied-go/pkg/report"
)

func buildServer(t *testing.T) (*model.Server, *model.DataAttribute, *model.DataAttribute) {
	t.Helper()

	s := model.NewServer("MyIED")
	ld, err := s.AddLogicalDevice("Protection")
	require.NoError(t, err)
	ln, err := ld.AddLogicalNode("MMXU1")
	require.NoError(t, err)
	do, err := ln.AddDataObject("PhV")
	require.NoError(t, err)
	phsA, err := do.AddAttribute("phsA.cVal.mag.f", 220.0)
	require.NoError(t, err)
	phsB, err := do.AddAttribute("phsB.cVal.mag.f", 219.5)
	require.NoError(t, err)

	_, err = ln.CreateDataset("dsMeas", []*model.DataAttribute{phsA, phsB})
	require.NoError(t, err)
	_, err = ln.CreateReport("urcb01", "dsMeas", "MyIED/Protection/MMXU1$RP$urcb01")
	require.NoError(t, err)

	return s, phsA, phsB
}

func TestConnectLifecycle(t *testing.T) {
	server, _, _ := buildServer(t)
	c := NewClient()

	assert.False(t, c.Connected())
	assert.Empty(t, c.AssociationID())

	_, _, err := c.Read("Protection/MMXU1.PhV.phsA.cVal.mag.f")
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = c.Directory()
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, c.EnableReport("Protection", "MMXU1", "urcb01", nil), ErrNotConnected)
	assert.ErrorIs(t, c.Close(), ErrNotConnected)

	require.NoError(t, c.Connect(server))
	assert.True(t, c.Connected())
	firstID := c.AssociationID()
	assert.NotEmpty(t, firstID)

	assert.ErrorIs(t, c.Connect(server), ErrAlreadyConnected)

	require.NoError(t, c.Close())
	assert.False(t, c.Connected())

	// Reconnecting assigns a fresh association ID.
	require.NoError(t, c.Connect(server))
	assert.NotEqual(t, firstID, c.AssociationID())
}

// eventRecorder captures log events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *eventRecorder) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func TestAssociationEvents(t *testing.T) {
	server, _, _ := buildServer(t)
	c := NewClient()
	recorder := &eventRecorder{}
	c.SetLogger(recorder)

	require.NoError(t, c.Connect(server))
	id := c.AssociationID()
	require.NoError(t, c.Close())

	require.Len(t, recorder.events, 2)
	open, closed := recorder.events[0], recorder.events[1]
	assert.Equal(t, log.CategoryAssociation, open.Category)
	assert.Equal(t, "open", open.Detail)
	assert.Equal(t, id, open.AssociationID)
	assert.Equal(t, "close", closed.Detail)
	assert.Equal(t, id, closed.AssociationID)
}

func TestConnectNilServer(t *testing.T) {
	c := NewClient()
	assert.Error(t, c.Connect(nil))
	assert.False(t, c.Connected())
}

func TestRead(t *testing.T) {
	server, phsA, _ := buildServer(t)
	c := NewClient()
	require.NoError(t, c.Connect(server))

	value, ts, err := c.Read("Protection/MMXU1.PhV.phsA.cVal.mag.f")
	require.NoError(t, err)
	assert.Equal(t, 220.0, value)
	assert.False(t, ts.IsZero())

	phsA.SetValue(225.5)
	value, _, err = c.Read("Protection/MMXU1.PhV.phsA.cVal.mag.f")
	require.NoError(t, err)
	assert.Equal(t, 225.5, value)

	_, _, err = c.Read("Protection/MMXU1.PhV.phsC.cVal.mag.f")
	assert.ErrorIs(t, err, model.ErrPathNotFound)
	_, _, err = c.Read("not a path")
	assert.ErrorIs(t, err, model.ErrPathNotFound)

	// The gateway surfaces the first missing segment unchanged.
	_, _, err = c.Read("Station/MMXU1.PhV.phsA.cVal.mag.f")
	var pathErr *model.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "Station", pathErr.Segment)
}

func TestReadQuality(t *testing.T) {
	server, phsA, _ := buildServer(t)
	c := NewClient()
	require.NoError(t, c.Connect(server))

	quality, err := c.ReadQuality("Protection/MMXU1.PhV.phsA.cVal.mag.f")
	require.NoError(t, err)
	assert.Equal(t, model.QualityGood, quality)

	phsA.SetQuality(model.QualityQuestionable)
	quality, err = c.ReadQuality("Protection/MMXU1.PhV.phsA.cVal.mag.f")
	require.NoError(t, err)
	assert.Equal(t, model.QualityQuestionable, quality)
}

func TestDirectory(t *testing.T) {
	server, _, _ := buildServer(t)
	c := NewClient()
	require.NoError(t, c.Connect(server))

	entries, err := c.Directory()
	require.NoError(t, err)

	var paths []string
	for entry := range entries {
		paths = append(paths, entry.Path)
	}
	assert.Equal(t, []string{
		"Protection",
		"Protection/MMXU1",
		"Protection/MMXU1.PhV",
		"Protection/MMXU1.PhV.phsA.cVal.mag.f",
		"Protection/MMXU1.PhV.phsB.cVal.mag.f",
	}, paths)
}

func TestEnableReport(t *testing.T) {
	server, phsA, _ := buildServer(t)
	c := NewClient()
	require.NoError(t, c.Connect(server))

	var mu sync.Mutex
	var received []map[string]any
	var reasons []report.Reason
	sink := func(reportID string, data map[string]any, reason report.Reason) error {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "MyIED/Protection/MMXU1$RP$urcb01", reportID)
		received = append(received, data)
		reasons = append(reasons, reason)
		return nil
	}

	require.NoError(t, c.EnableReport("Protection", "MMXU1", "urcb01", sink))

	phsA.SetValue(225.5)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, map[string]any{
		"Protection/MMXU1.PhV.phsA.cVal.mag.f": 225.5,
		"Protection/MMXU1.PhV.phsB.cVal.mag.f": 219.5,
	}, received[0])
	assert.Equal(t, report.ReasonDataChange, reasons[0])
}

func TestDisableReport(t *testing.T) {
	server, phsA, _ := buildServer(t)
	c := NewClient()
	require.NoError(t, c.Connect(server))

	count := 0
	sink := func(string, map[string]any, report.Reason) error {
		count++
		return nil
	}

	require.NoError(t, c.EnableReport("Protection", "MMXU1", "urcb01", sink))
	phsA.SetValue(221.0)
	require.NoError(t, c.DisableReport("Protection", "MMXU1", "urcb01"))
	phsA.SetValue(222.0)

	assert.Equal(t, 1, count)
}

func TestRCBNotFound(t *testing.T) {
	server, _, _ := buildServer(t)
	c := NewClient()
	require.NoError(t, c.Connect(server))

	tests := []struct {
		name       string
		ld, ln, rc string
	}{
		{"UnknownDevice", "Station", "MMXU1", "urcb01"},
		{"UnknownNode", "Protection", "MMXU9", "urcb01"},
		{"UnknownBlock", "Protection", "MMXU1", "urcb99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.EnableReport(tt.ld, tt.ln, tt.rc, nil)
			assert.ErrorIs(t, err, ErrRCBNotFound)
			err = c.DisableReport(tt.ld, tt.ln, tt.rc)
			assert.ErrorIs(t, err, ErrRCBNotFound)
		})
	}
}
