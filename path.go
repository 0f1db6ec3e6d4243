package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Path 输入/输出的位置，本地文件或mongo的{db}.{col}
type Path struct {
	File string
	DB   string
	Coll string
}

// NewPath 解析输入位置
// 存在的文件按文件处理，否则按{db}.{col}解析，空串返回nil
func NewPath(filePathOrColl string) (*Path, error) {
	// 检查filePathOrColl是否作为文件存在
	if _, err := os.Stat(filePathOrColl); err == nil {
		return &Path{
			File: filePathOrColl,
		}, nil
	}
	dbDotColl := strings.TrimSpace(filePathOrColl)
	if dbDotColl == "" {
		return nil, nil
	}
	splitted := strings.Split(dbDotColl, ".")
	if len(splitted) != 2 {
		return nil, fmt.Errorf("dbDotColl is invalid: %s", dbDotColl)
	}
	return &Path{
		DB:   splitted[0],
		Coll: splitted[1],
	}, nil
}

// NewOutputPath 解析输出位置
// 输出文件尚不存在，带路径分隔符或json后缀的按文件处理
func NewOutputPath(filePathOrColl string) (*Path, error) {
	s := strings.TrimSpace(filePathOrColl)
	if s == "" {
		return nil, nil
	}
	if strings.ContainsAny(s, `/\`) ||
		strings.HasSuffix(s, ".json") || strings.HasSuffix(s, ".geojson") {
		return &Path{File: s}, nil
	}
	splitted := strings.Split(s, ".")
	if len(splitted) != 2 {
		return nil, fmt.Errorf("dbDotColl is invalid: %s", s)
	}
	return &Path{DB: splitted[0], Coll: splitted[1]}, nil
}

func (p *Path) GetDb() string {
	return p.DB
}

func (p *Path) GetColl() string {
	return p.Coll
}

// GetCachePath 远程输入在cache目录下的缓存文件名
func (p *Path) GetCachePath() string {
	if p.File != "" {
		// return absolute path
		path, err := filepath.Abs(p.File)
		if err != nil {
			log.Panicf("failed to get absolute path of %s: %v", p.File, err)
		}
		return path
	}
	return p.DB + "." + p.Coll + ".json"
}
