// Package geo 平面多边形判定，用于道路边与tract多边形的相交测试
package geo

import (
	"git.fiblab.net/general/common/v2/geometry"
)

// Polygon 多边形外环（顶点序列，首尾自动闭合，不支持内环）
type Polygon []geometry.Point

// Contains 射线法判断点是否在多边形内
func (p Polygon) Contains(pt geometry.Point) bool {
	inside := false
	n := len(p)
	if n < 3 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p[i], p[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) &&
			pt.X < (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

func cross(o, a, b geometry.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// 共线情形下c是否落在ab包围盒内
func onSegment(a, b, c geometry.Point) bool {
	return min(a.X, b.X) <= c.X && c.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= c.Y && c.Y <= max(a.Y, b.Y)
}

// SegmentsIntersect 判断线段p1p2与p3p4是否相交（含端点相触与共线重叠）
func SegmentsIntersect(p1, p2, p3, p4 geometry.Point) bool {
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

// IntersectsPolyline 折线与多边形是否相交
// 折线顶点落入多边形内部，或任一折线段与多边形边界相交，均视为相交
func (p Polygon) IntersectsPolyline(line []geometry.Point) bool {
	if len(p) < 3 || len(line) == 0 {
		return false
	}
	for _, pt := range line {
		if p.Contains(pt) {
			return true
		}
	}
	n := len(p)
	for i := 0; i+1 < len(line); i++ {
		for j, k := 0, n-1; j < n; k, j = j, j+1 {
			if SegmentsIntersect(line[i], line[i+1], p[k], p[j]) {
				return true
			}
		}
	}
	return false
}
