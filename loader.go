package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/urbansim/foottraffic/sim"
	"github.com/urbansim/foottraffic/sim/geo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 输入行格式，文件为JSON数组，mongo为同构文档

type commuteCountDoc struct {
	Mode    string  `json:"mode" bson:"mode"`
	Start   float64 `json:"start" bson:"start"`
	End     float64 `json:"end" bson:"end"`
	Workers int     `json:"workers" bson:"workers"`
}

// ACS通勤表的一行：tract内按(方式,时段)的人数与居家办公人数
type censusRowDoc struct {
	GEOID  string            `json:"geoid" bson:"geoid"`
	WFH    int               `json:"wfh" bson:"wfh"`
	Counts []commuteCountDoc `json:"counts" bson:"counts"`
}

// LODES OD表的一行，沿用其列名
type flowDoc struct {
	Home   string  `json:"h_geocode" bson:"h_geocode"`
	Work   string  `json:"w_geocode" bson:"w_geocode"`
	Weight float64 `json:"s000" bson:"s000"`
}

// tract多边形（外环顶点序列）
type tractGeomDoc struct {
	GEOID   string      `json:"geoid" bson:"geoid"`
	Polygon [][]float64 `json:"polygon" bson:"polygon"`
}

// 路网行，kind区分节点与边
type networkRowDoc struct {
	Kind string `json:"kind" bson:"kind"`

	// kind == "node"
	ID int64   `json:"id,omitempty" bson:"id,omitempty"`
	X  float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y  float64 `json:"y,omitempty" bson:"y,omitempty"`

	// kind == "edge"
	U      int64       `json:"u,omitempty" bson:"u,omitempty"`
	V      int64       `json:"v,omitempty" bson:"v,omitempty"`
	Key    int         `json:"key,omitempty" bson:"key,omitempty"`
	Length float64     `json:"length,omitempty" bson:"length,omitempty"`
	Line   [][]float64 `json:"line,omitempty" bson:"line,omitempty"`
}

func readRows[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

// loadRows 从文件或mongo加载一张表，远程读取可落缓存
func loadRows[T any](lazyClient func() *mongo.Client, p *Path, cacheDir string) ([]T, error) {
	if p == nil {
		return nil, fmt.Errorf("input path is empty")
	}
	if p.File != "" {
		return readRows[T](p.File)
	}
	if cacheDir != "" {
		cachePath := filepath.Join(cacheDir, p.GetCachePath())
		if _, err := os.Stat(cachePath); err == nil {
			log.Infof("loading cached data from %s", cachePath)
			return readRows[T](cachePath)
		}
	}
	ctx := context.Background()
	cur, err := lazyClient().Database(p.GetDb()).Collection(p.GetColl()).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query %s.%s: %w", p.GetDb(), p.GetColl(), err)
	}
	var rows []T
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s.%s: %w", p.GetDb(), p.GetColl(), err)
	}
	if cacheDir != "" {
		if data, err := json.Marshal(rows); err == nil {
			cachePath := filepath.Join(cacheDir, p.GetCachePath())
			if err := os.MkdirAll(cacheDir, 0o755); err != nil {
				log.Warnf("failed to create cache dir %s: %v", cacheDir, err)
			} else if err := os.WriteFile(cachePath, data, 0o644); err != nil {
				log.Warnf("failed to write cache %s: %v", cachePath, err)
			}
		}
	}
	return rows, nil
}

var modeNames = map[string]sim.Mode{
	"wfh":     sim.ModeWFH,
	"drive":   sim.ModeDrive,
	"carpool": sim.ModeCarpool,
	"transit": sim.ModeTransit,
	"walk":    sim.ModeWalk,
	"other":   sim.ModeOther,
}

func toPoints(coords [][]float64) ([]geometry.Point, error) {
	points := make([]geometry.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("coordinate with %d components", len(c))
		}
		points = append(points, geometry.Point{X: c[0], Y: c[1]})
	}
	return points, nil
}

type inputs struct {
	tracts  []*sim.Tract
	flows   []sim.FlowRecord
	network *sim.Network
}

// loadInputs 加载并装配仿真输入
// 任何输入缺失或格式错误都是配置错误，直接返回error终止运行
func loadInputs(mongoURI string, censusPath, flowsPath, networkPath, tractsPath *Path, cacheDir string) (*inputs, error) {
	var client *mongo.Client
	lazyClient := func() *mongo.Client {
		if client == nil {
			c, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
			if err != nil {
				log.Panicf("failed to connect to mongo: %v", err)
			}
			client = c
		}
		return client
	}
	defer func() {
		if client != nil {
			client.Disconnect(context.Background())
		}
	}()

	censusRows, err := loadRows[censusRowDoc](lazyClient, censusPath, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("census: %w", err)
	}
	geomRows, err := loadRows[tractGeomDoc](lazyClient, tractsPath, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("tracts: %w", err)
	}
	flowRows, err := loadRows[flowDoc](lazyClient, flowsPath, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("flows: %w", err)
	}
	netRows, err := loadRows[networkRowDoc](lazyClient, networkPath, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	// tract = 几何 + 通勤统计，以GEOID对齐
	// 只有几何的tract保留（可作为工作地），只有统计的tract也保留（由仿真放弃其agent）
	tracts := make(map[string]*sim.Tract)
	for _, g := range geomRows {
		points, err := toPoints(g.Polygon)
		if err != nil {
			return nil, fmt.Errorf("tract %s: %w", g.GEOID, err)
		}
		tracts[g.GEOID] = &sim.Tract{GEOID: g.GEOID, Boundary: geo.Polygon(points)}
	}
	for _, row := range censusRows {
		t, ok := tracts[row.GEOID]
		if !ok {
			t = &sim.Tract{GEOID: row.GEOID}
			tracts[row.GEOID] = t
		}
		t.WFH += row.WFH
		for _, c := range row.Counts {
			mode, ok := modeNames[c.Mode]
			if !ok {
				return nil, fmt.Errorf("census %s: unknown mode %q", row.GEOID, c.Mode)
			}
			if mode == sim.ModeWFH {
				t.WFH += c.Workers
				continue
			}
			t.Counts = append(t.Counts, sim.CommuteCount{
				Mode:    mode,
				Window:  sim.TimeWindow{Start: c.Start, End: c.End},
				Workers: c.Workers,
			})
		}
	}

	flows := lo.Map(flowRows, func(f flowDoc, _ int) sim.FlowRecord {
		return sim.FlowRecord{Home: f.Home, Work: f.Work, Weight: f.Weight}
	})

	nodes := make([]sim.Node, 0)
	edges := make([]sim.Edge, 0)
	for _, row := range netRows {
		switch row.Kind {
		case "node":
			nodes = append(nodes, sim.Node{ID: row.ID, P: geometry.Point{X: row.X, Y: row.Y}})
		case "edge":
			line, err := toPoints(row.Line)
			if err != nil {
				return nil, fmt.Errorf("edge %d-%d-%d: %w", row.U, row.V, row.Key, err)
			}
			edges = append(edges, sim.Edge{
				ID:     sim.EdgeID{U: row.U, V: row.V, Key: row.Key},
				Line:   line,
				Length: row.Length,
			})
		default:
			return nil, fmt.Errorf("network row with unknown kind %q", row.Kind)
		}
	}

	log.Infof("loaded %d tracts, %d census rows, %d flows", len(tracts), len(censusRows), len(flows))
	return &inputs{
		tracts:  lo.Values(tracts),
		flows:   flows,
		network: sim.NewNetwork(nodes, edges),
	}, nil
}
