package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbansim/foottraffic/sim"
)

func writeFixture(t *testing.T, dir, name, content string) *Path {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	p, err := NewPath(path)
	require.NoError(t, err)
	return p
}

func TestLoadInputsFromFiles(t *testing.T) {
	dir := t.TempDir()
	censusPath := writeFixture(t, dir, "census.json", `[
		{"geoid": "24510000100", "wfh": 3, "counts": [
			{"mode": "drive", "start": 7, "end": 7.5, "workers": 10},
			{"mode": "wfh", "start": 0, "end": 5, "workers": 2}
		]},
		{"geoid": "24510000300", "wfh": 0, "counts": [
			{"mode": "walk", "start": 8, "end": 8.5, "workers": 4}
		]}
	]`)
	tractsPath := writeFixture(t, dir, "tracts.json", `[
		{"geoid": "24510000100", "polygon": [[0, 0], [4, 0], [4, 4], [0, 4]]},
		{"geoid": "24510000200", "polygon": [[10, 0], [14, 0], [14, 4], [10, 4]]}
	]`)
	flowsPath := writeFixture(t, dir, "flows.json", `[
		{"h_geocode": "24510000100", "w_geocode": "24510000200", "s000": 12}
	]`)
	networkPath := writeFixture(t, dir, "network.json", `[
		{"kind": "node", "id": 1, "x": 2, "y": 2},
		{"kind": "node", "id": 2, "x": 12, "y": 2},
		{"kind": "edge", "u": 1, "v": 2, "key": 0, "length": 10, "line": [[2, 2], [12, 2]]}
	]`)

	in, err := loadInputs("", censusPath, flowsPath, networkPath, tractsPath, "")
	require.NoError(t, err)

	// 几何与统计按GEOID合并，仅统计的tract也保留
	assert.Len(t, in.tracts, 3)
	byID := lo.SliceToMap(in.tracts, func(t *sim.Tract) (string, *sim.Tract) {
		return t.GEOID, t
	})
	merged := byID["24510000100"]
	require.NotNil(t, merged)
	assert.Len(t, merged.Boundary, 4)
	// counts里的wfh方式并入WFH计数
	assert.Equal(t, 5, merged.WFH)
	require.Len(t, merged.Counts, 1)
	assert.Equal(t, sim.ModeDrive, merged.Counts[0].Mode)
	assert.Equal(t, 10, merged.Counts[0].Workers)
	assert.Equal(t, sim.TimeWindow{Start: 7, End: 7.5}, merged.Counts[0].Window)

	geomOnly := byID["24510000200"]
	require.NotNil(t, geomOnly)
	assert.Empty(t, geomOnly.Counts)

	censusOnly := byID["24510000300"]
	require.NotNil(t, censusOnly)
	assert.Empty(t, censusOnly.Boundary)
	assert.Len(t, censusOnly.Counts, 1)

	require.Len(t, in.flows, 1)
	assert.Equal(t, sim.FlowRecord{Home: "24510000100", Work: "24510000200", Weight: 12}, in.flows[0])

	edge, ok := in.network.EdgeByID(sim.EdgeID{U: 1, V: 2, Key: 0})
	require.True(t, ok)
	assert.Equal(t, 10.0, edge.Length)
}

func TestLoadInputsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	censusPath := writeFixture(t, dir, "census.json", `[
		{"geoid": "24510000100", "counts": [{"mode": "teleport", "workers": 1}]}
	]`)
	tractsPath := writeFixture(t, dir, "tracts.json", `[]`)
	flowsPath := writeFixture(t, dir, "flows.json", `[]`)
	networkPath := writeFixture(t, dir, "network.json", `[]`)

	_, err := loadInputs("", censusPath, flowsPath, networkPath, tractsPath, "")
	assert.ErrorContains(t, err, "unknown mode")
}

func TestLoadInputsBadNetworkRow(t *testing.T) {
	dir := t.TempDir()
	censusPath := writeFixture(t, dir, "census.json", `[]`)
	tractsPath := writeFixture(t, dir, "tracts.json", `[]`)
	flowsPath := writeFixture(t, dir, "flows.json", `[]`)
	networkPath := writeFixture(t, dir, "network.json", `[{"kind": "tunnel"}]`)

	_, err := loadInputs("", censusPath, flowsPath, networkPath, tractsPath, "")
	assert.ErrorContains(t, err, "unknown kind")
}

func TestReadRowsParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := readRows[flowDoc](path)
	assert.Error(t, err)
}
