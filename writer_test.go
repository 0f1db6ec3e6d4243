package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbansim/foottraffic/sim"
)

func newWriterNetwork() *sim.Network {
	nodes := []sim.Node{
		{ID: 1, P: geometry.Point{X: 0, Y: 0}},
		{ID: 2, P: geometry.Point{X: 3, Y: 4}},
	}
	edges := []sim.Edge{
		{
			ID:     sim.EdgeID{U: 1, V: 2, Key: 0},
			Line:   []geometry.Point{{X: 0, Y: 0}, {X: 3, Y: 4}},
			Length: 5,
		},
	}
	return sim.NewNetwork(nodes, edges)
}

func TestBuildFeatures(t *testing.T) {
	network := newWriterNetwork()
	records := []sim.TrafficRecord{
		{Edge: sim.EdgeID{U: 1, V: 2, Key: 0}, Hour: 8, Count: 3},
		{Edge: sim.EdgeID{U: 7, V: 8, Key: 0}, Hour: 9, Count: 1},
	}

	features := buildFeatures(records, network)
	require.Len(t, features, 2)

	f := features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, int64(1), f.Properties["u"])
	assert.Equal(t, int64(2), f.Properties["v"])
	assert.Equal(t, 8, f.Properties["hour"])
	assert.Equal(t, 3, f.Properties["foot_traffic"])
	require.NotNil(t, f.Geometry)
	assert.Equal(t, "LineString", f.Geometry.Type)
	assert.Equal(t, [][]float64{{0, 0}, {3, 4}}, f.Geometry.Coordinates)

	// 路网中不存在的边保留属性但没有几何
	assert.Nil(t, features[1].Geometry)
}

func TestWriteRecordsGeoJSON(t *testing.T) {
	network := newWriterNetwork()
	records := []sim.TrafficRecord{
		{Edge: sim.EdgeID{U: 1, V: 2, Key: 0}, Hour: 8, Count: 3},
	}
	outFile := filepath.Join(t.TempDir(), "foot_traffic.geojson")
	out, err := NewOutputPath(outFile)
	require.NoError(t, err)

	require.NoError(t, writeRecords(records, network, out, ""))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var collection geoJSONCollection
	require.NoError(t, json.Unmarshal(data, &collection))
	assert.Equal(t, "FeatureCollection", collection.Type)
	require.Len(t, collection.Features, 1)
	assert.Equal(t, float64(3), collection.Features[0].Properties["foot_traffic"])
}
