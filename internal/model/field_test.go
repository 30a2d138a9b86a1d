package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndicesRowMajor(t *testing.T) {
	indices := Indices()

	assert.Len(t, indices, FieldSize*FieldSize)
	assert.Equal(t, Index{Row: 0, Col: 0}, indices[0])
	assert.Equal(t, Index{Row: 0, Col: 1}, indices[1])
	assert.Equal(t, Index{Row: 1, Col: 0}, indices[FieldSize])
	assert.Equal(t, Index{Row: 9, Col: 9}, indices[len(indices)-1])
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(Index{Row: 0, Col: 0}))
	assert.True(t, InRange(Index{Row: 9, Col: 9}))
	assert.False(t, InRange(Index{Row: -1, Col: 0}))
	assert.False(t, InRange(Index{Row: 0, Col: 10}))
	assert.False(t, InRange(Index{Row: 10, Col: 10}))
}

func TestFieldOutOfRangeReadsSentinel(t *testing.T) {
	f := NewField(AttackMiss, AttackEmpty)

	assert.Equal(t, AttackMiss, f.At(Index{Row: 3, Col: 3}))
	assert.Equal(t, AttackEmpty, f.At(Index{Row: -1, Col: 3}))
	assert.Equal(t, AttackEmpty, f.At(Index{Row: 3, Col: 10}))
}

func TestFieldOutOfRangeWriteIgnored(t *testing.T) {
	f := NewAttackField()

	f.Set(Index{Row: 10, Col: 0}, AttackHit)
	f.Set(Index{Row: 0, Col: -1}, AttackHit)

	assert.Equal(t, 0, f.Count(AttackHit))
	assert.Equal(t, FieldSize*FieldSize, f.Count(AttackEmpty))
}

func TestFieldSnapshotIsCopy(t *testing.T) {
	f := NewAttackField()
	f.Set(Index{Row: 1, Col: 2}, AttackHit)

	snap := f.Snapshot()
	snap[1][2] = AttackMiss
	snap[0][0] = AttackMiss

	assert.Equal(t, AttackHit, f.At(Index{Row: 1, Col: 2}))
	assert.Equal(t, AttackEmpty, f.At(Index{Row: 0, Col: 0}))
}

func TestNewPositionFieldNormalizesCells(t *testing.T) {
	var m Matrix[PositionCell]
	m[2][3] = PositionShip
	m[4][4] = "bogus"

	f := NewPositionField(m)

	assert.Equal(t, PositionShip, f.At(Index{Row: 2, Col: 3}))
	assert.Equal(t, PositionEmpty, f.At(Index{Row: 4, Col: 4}))
	assert.Equal(t, PositionEmpty, f.At(Index{Row: 0, Col: 0}))
	assert.Equal(t, 1, f.Count(PositionShip))
}

func TestFieldFromMatrixCopies(t *testing.T) {
	var m Matrix[AttackCell]
	m[0][0] = AttackHit

	f := FieldFromMatrix(m, AttackEmpty)
	m[0][0] = AttackMiss

	assert.Equal(t, AttackHit, f.At(Index{Row: 0, Col: 0}))
}
