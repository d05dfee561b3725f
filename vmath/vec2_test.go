package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV2Normalize(t *testing.T) {
	n := V2Normalize(Vec2{3, 4})
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
	assert.Equal(t, Vec2{}, V2Normalize(Vec2{}))
}

func TestV2Toward(t *testing.T) {
	v := V2Toward(Vec2{1, 1}, Vec2{1, 5}, 2)
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 2, v.Y, 1e-12)
	assert.InDelta(t, 5.0, V2Dist(Vec2{0, 0}, Vec2{3, 4}), 1e-12)
}

func TestV2Heading(t *testing.T) {
	assert.InDelta(t, 0, V2Heading(Vec2{1, 0}), 1e-12)
	assert.InDelta(t, 90, V2Heading(Vec2{0, 1}), 1e-12)
	assert.InDelta(t, 180, V2Heading(Vec2{-1, 0}), 1e-12)
}
