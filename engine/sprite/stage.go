// Package sprite implements the CPU side of sprite rendering: composing
// per-sprite transforms, staging them as GPU instance data, and grouping
// sprites that share an atlas into batches drawn with a single instanced call.
package sprite

import (
	"github.com/pixelforge/atlas2d/engine/atlas"
)

// MatrixFromRows concatenates four vec4 rows into a flat column-major 4x4
// matrix, reproducing what the vertex stage does when it rebuilds the
// transform from the four instance attributes. Row order is preserved; the
// fourth row carries the translation.
//
// Parameters:
//   - r0, r1, r2, r3: the four vec4 rows in attribute order
//
// Returns:
//   - [16]float32: the flat column-major matrix
func MatrixFromRows(r0, r1, r2, r3 [4]float32) [16]float32 {
	var out [16]float32
	copy(out[0:4], r0[:])
	copy(out[4:8], r1[:])
	copy(out[8:12], r2[:])
	copy(out[12:16], r3[:])
	return out
}

// Rows splits a flat column-major matrix into the four vec4 rows the instance
// buffer carries. Inverse of MatrixFromRows.
//
// Parameters:
//   - m: the flat column-major matrix
//
// Returns:
//   - [4][4]float32: the four rows in attribute order
func Rows(m [16]float32) [4][4]float32 {
	var rows [4][4]float32
	for i := range rows {
		copy(rows[i][:], m[i*4:(i+1)*4])
	}
	return rows
}

// TransformVertex runs the vertex-stage transform on the CPU: the position is
// taken through the full matrix, then the clip-space z is overwritten with the
// vertex's untransformed z so the layer survives any transform. This is the
// reference the vertex shaders are pinned against.
//
// Parameters:
//   - transform: the composed clip-space transform (16 elements, column-major)
//   - v: the quad vertex to transform
//
// Returns:
//   - [4]float32: the clip-space position with pass-through depth
func TransformVertex(transform []float32, v atlas.GPUSpriteVertex) [4]float32 {
	clip := [4]float32{0, 0, 0, 1}
	for row := 0; row < 4; row++ {
		clip[row] = transform[row]*v.Position[0] +
			transform[4+row]*v.Position[1] +
			transform[8+row]*v.Position[2] +
			transform[12+row]
	}
	clip[2] = v.Position[2]
	return clip
}
