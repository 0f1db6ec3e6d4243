package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/urbansim/foottraffic/sim"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GeoJSON输出：每条(边,小时)非零记录一个Feature，几何从路网回填

type geoJSONGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string           `json:"type"`
	Geometry   *geoJSONGeometry `json:"geometry"`
	Properties map[string]any   `json:"properties"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// mongo输出的文档格式
type trafficDoc struct {
	U     int64 `bson:"u"`
	V     int64 `bson:"v"`
	Key   int   `bson:"key"`
	Hour  int   `bson:"hour"`
	Count int   `bson:"foot_traffic"`
}

func buildFeatures(records []sim.TrafficRecord, network *sim.Network) []geoJSONFeature {
	missing := 0
	features := lo.Map(records, func(r sim.TrafficRecord, _ int) geoJSONFeature {
		f := geoJSONFeature{
			Type: "Feature",
			Properties: map[string]any{
				"u":            r.Edge.U,
				"v":            r.Edge.V,
				"key":          r.Edge.Key,
				"hour":         r.Hour,
				"foot_traffic": r.Count,
			},
		}
		if e, ok := network.EdgeByID(r.Edge); ok {
			f.Geometry = &geoJSONGeometry{
				Type: "LineString",
				Coordinates: lo.Map(e.Line, func(p geometry.Point, _ int) []float64 {
					return []float64{p.X, p.Y}
				}),
			}
		} else {
			missing++
		}
		return f
	})
	if missing > 0 {
		log.Warnf("output: %d records without edge geometry", missing)
	}
	return features
}

// writeRecords 把最终长表写到GeoJSON文件或mongo集合
func writeRecords(records []sim.TrafficRecord, network *sim.Network, out *Path, mongoURI string) error {
	if out.File != "" {
		collection := geoJSONCollection{
			Type:     "FeatureCollection",
			Features: buildFeatures(records, network),
		}
		data, err := json.Marshal(collection)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		if err := os.WriteFile(out.File, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out.File, err)
		}
		log.Infof("wrote %d features to %s", len(collection.Features), out.File)
		return nil
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	defer client.Disconnect(ctx)
	docs := lo.Map(records, func(r sim.TrafficRecord, _ int) any {
		return trafficDoc{U: r.Edge.U, V: r.Edge.V, Key: r.Edge.Key, Hour: r.Hour, Count: r.Count}
	})
	if len(docs) == 0 {
		log.Warn("no traffic records to insert")
		return nil
	}
	if _, err := client.Database(out.GetDb()).Collection(out.GetColl()).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s.%s: %w", out.GetDb(), out.GetColl(), err)
	}
	log.Infof("inserted %d records into %s.%s", len(docs), out.GetDb(), out.GetColl())
	return nil
}
