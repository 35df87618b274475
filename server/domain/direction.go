package domain

import (
	"errors"
	"fmt"
)

// Direction は絶対方位を表します。N, E, S, W の時計回り順で 0..3 に対応します。
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

const directionCount = 4

var ErrInvalidDirection = errors.New("invalid direction")

// ParseDirection は "N" / "E" / "S" / "W" を Direction に変換します。
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "N":
		return North, nil
	case "E":
		return East, nil
	case "S":
		return South, nil
	case "W":
		return West, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Opposite は 180 度反対の方位を返します。
func (d Direction) Opposite() Direction {
	return (d + 2) % directionCount
}

// RotateClockwise は右に 90 度回転した方位を返します。
func (d Direction) RotateClockwise() Direction {
	return (d + 1) % directionCount
}

// RotateCounterClockwise は左に 90 度回転した方位を返します。
func (d Direction) RotateCounterClockwise() Direction {
	return (d + directionCount - 1) % directionCount
}

// AngularDifference は (a - b) * 90 を返します。
// [-180, 180] への正規化は行わないため、値域は [-270, 270] です。
func AngularDifference(a, b Direction) int {
	return (int(a) - int(b)) * 90
}

// Relative は自機の向きを基準にした相対方向です。
type Relative uint8

const (
	Front Relative = iota
	Back
	Left
	Right
)

// Relatives は走査順に並べた全相対方向です。
var Relatives = [4]Relative{Front, Back, Left, Right}

func (r Relative) String() string {
	switch r {
	case Front:
		return "front"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Relative(%d)", uint8(r))
	}
}

// Longitudinal は前後軸の相対方向であれば true を返します。
func (r Relative) Longitudinal() bool {
	return r == Front || r == Back
}

// Absolute は向き d の機体から見た相対方向 r の絶対方位を返します。
func (r Relative) Absolute(d Direction) Direction {
	switch r {
	case Front:
		return d
	case Back:
		return d.Opposite()
	case Left:
		return d.RotateCounterClockwise()
	case Right:
		return d.RotateClockwise()
	default:
		panic(fmt.Sprintf("domain: unknown relative direction %d", uint8(r)))
	}
}

// Axis は座標軸です。
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// step は y が下 (South) に向かって増える座標系での1マスの移動量です。
type step struct {
	axis Axis
	sign int
}

// stepTable[relative][direction]
var stepTable = [4][directionCount]step{
	Front: {North: {AxisY, -1}, East: {AxisX, +1}, South: {AxisY, +1}, West: {AxisX, -1}},
	Back:  {North: {AxisY, +1}, East: {AxisX, -1}, South: {AxisY, -1}, West: {AxisX, +1}},
	Left:  {North: {AxisX, -1}, East: {AxisY, -1}, South: {AxisX, +1}, West: {AxisY, +1}},
	Right: {North: {AxisX, +1}, East: {AxisY, +1}, South: {AxisX, -1}, West: {AxisY, -1}},
}

// AxisAndSign は向き d の機体から相対方向 r へ進むときに変化する軸とその符号を返します。
// 未知の Relative は呼び出し側のバグなので panic します。
func AxisAndSign(d Direction, r Relative) (Axis, int) {
	if int(r) >= len(stepTable) || int(d) >= directionCount {
		panic(fmt.Sprintf("domain: no axis for direction=%d relative=%d", uint8(d), uint8(r)))
	}
	s := stepTable[r][d]
	return s.axis, s.sign
}
