package sim

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/urbansim/foottraffic/sim/geo"
)

// Mode 通勤方式
type Mode string

const (
	ModeWFH     Mode = "wfh"     // 居家办公
	ModeDrive   Mode = "drive"   // 独自驾车
	ModeCarpool Mode = "carpool" // 拼车
	ModeTransit Mode = "transit" // 公共交通
	ModeWalk    Mode = "walk"    // 步行
	ModeOther   Mode = "other"   // 其他（含自行车）
)

// TimeWindow 出发时段，[Start, End)，单位为小时
type TimeWindow struct {
	Start float64
	End   float64
}

// Midpoint 时段中点，作为出发时刻采样的均值
func (w TimeWindow) Midpoint() float64 {
	return (w.Start + w.End) / 2
}

// CommuteCount 一个tract内某(方式,时段)的上报通勤人数
type CommuteCount struct {
	Mode    Mode
	Window  TimeWindow
	Workers int
}

// Tract 人口普查地理单元，加载后不可变
type Tract struct {
	GEOID    string         // 定宽地理编码
	Boundary geo.Polygon    // 多边形边界，与路网同坐标系
	Counts   []CommuteCount // (方式,时段) -> 人数
	WFH      int            // 居家办公人数
}

// FlowRecord home tract到work tract的就业流（LODES OD）
type FlowRecord struct {
	Home   string
	Work   string
	Weight float64 // 岗位数
}

// EdgeID 道路边的稳定标识
type EdgeID struct {
	U   int64 // 起点节点
	V   int64 // 终点节点
	Key int   // 平行边区分号
}

func (e EdgeID) String() string {
	return fmt.Sprintf("%d-%d-%d", e.U, e.V, e.Key)
}

// Edge 路网有向边
type Edge struct {
	ID     EdgeID
	Line   []geometry.Point // 几何折线
	Length float64
}

// Node 路网节点
type Node struct {
	ID int64
	P  geometry.Point
}
