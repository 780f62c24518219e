package lanegeom

import (
	"math"

	"github.com/paulmach/orb"
)

// normalizeAngle brings angle into (-pi; pi]
func normalizeAngle(angle float64) float64 {
	for angle <= -1*math.Pi {
		angle += 2 * math.Pi
	}
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// pointOnSegmentByFraction returns a point on given segment assuming knowledge about fraction
func pointOnSegmentByFraction(p, q orb.Point, fraction float64) orb.Point {
	return orb.Point{
		(1-fraction)*p.X() + (fraction * q.X()),
		(1-fraction)*p.Y() + (fraction * q.Y()),
	}
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts orb.LineString) orb.LineString {
	inputLen := len(pts)
	output := make(orb.LineString, inputLen)
	for i, n := range pts {
		j := inputLen - i - 1
		output[j] = n
	}
	return output
}

// sampleStations returns ceil(length/step)+1 strictly increasing section-local stations: from 0
// with given step plus the closing station length-closingEps, so the last sample never lands
// past the section end
func sampleStations(length, step, closingEps float64) []float64 {
	if length <= 0 || step <= 0 {
		return nil
	}
	count := int(math.Ceil(length/step)) + 1
	stations := make([]float64, 0, count)
	for i := 0; ; i++ {
		s := float64(i) * step
		if s >= length {
			break
		}
		stations = append(stations, s)
	}
	// A regular station inside (length-closingEps; length) would collide with the closing one:
	// it is moved halfway back to its neighbour so stations stay strictly increasing
	closing := length - closingEps
	n := len(stations)
	if closing <= stations[n-1] {
		if n > 1 && closing > stations[n-2] {
			stations[n-1] = (stations[n-2] + closing) / 2.0
		} else {
			closing = (stations[n-1] + length) / 2.0
		}
	}
	stations = append(stations, closing)
	return stations
}
