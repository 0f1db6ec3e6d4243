package main

import (
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/urbansim/foottraffic/sim"
)

var (
	// 配置信息
	mongoURI       = flag.String("mongo_uri", "", "mongo db uri")
	censusPathStr  = flag.String("census", "", "commuting table [format: {fspath} or {db}.{col}]")
	flowsPathStr   = flag.String("flows", "", "home-work job flow table [format: {fspath} or {db}.{col}]")
	networkPathStr = flag.String("map", "", "road network [format: {fspath} or {db}.{col}]")
	tractsPathStr  = flag.String("tracts", "", "tract polygons [format: {fspath} or {db}.{col}]")
	outPathStr     = flag.String("out", "foot_traffic.geojson", "output [format: {fspath} or {db}.{col}]")
	cacheDir       = flag.String("cache", "", "input cache dir path (empty means disable cache)")
	seed           = flag.Int64("seed", 0, "random seed")
	shards         = flag.Int("shards", 1, "parallel simulation shards")
	routeDrivers   = flag.Bool("route-drivers", false,
		"credit drive/carpool commute hours along the shortest path (off reproduces the observed model)")
	logLevel = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")

	// 性能测试
	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "", "pprof listening address (empty means disable)")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func mustPath(name, value string) *Path {
	p, err := NewPath(value)
	if err != nil {
		log.Fatalf("invalid %s path: %s", name, err)
	}
	if p == nil {
		log.Fatalf("missing required -%s", name)
	}
	return p
}

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	flag.Parse()
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *logLevel)
	}

	censusPath := mustPath("census", *censusPathStr)
	flowsPath := mustPath("flows", *flowsPathStr)
	networkPath := mustPath("map", *networkPathStr)
	tractsPath := mustPath("tracts", *tractsPathStr)
	outPath, err := NewOutputPath(*outPathStr)
	if err != nil {
		log.Fatalf("invalid out path: %s", err)
	}

	if *pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(*pprofAddr)
	}

	in, err := loadInputs(*mongoURI, censusPath, flowsPath, networkPath, tractsPath, *cacheDir)
	if err != nil {
		log.Fatalf("failed to load inputs: %v", err)
	}

	if *benchmark {
		// 性能测试
		runBenchmark(in)
		return
	}

	s := sim.New(in.tracts, in.flows, in.network, sim.Config{
		Seed:         *seed,
		Shards:       *shards,
		RouteDrivers: *routeDrivers,
	})
	start := time.Now()
	records := s.Run()
	log.Infof("simulation finished in %v with %d records", time.Since(start), len(records))

	if outPath == nil {
		log.Warn("no output path, discarding results")
		return
	}
	if err := writeRecords(records, in.network, outPath, *mongoURI); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}
	log.Info("foot traffic closes")
}
