package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// TransformVec4 multiplies a column-major 4x4 matrix by a 4-component vector.
// Result: out = m * v
//
// Parameters:
//   - m: source matrix (16 elements, column-major)
//   - v: the vector to transform
//
// Returns:
//   - [4]float32: the transformed vector
func TransformVec4(m []float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}
	return out
}

// Orthographic creates an orthographic projection matrix mapping the given
// world-space box to WebGPU clip space: x,y to [-1, 1] and z to [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - left, right: world-space x bounds
//   - bottom, top: world-space y bounds
//   - near, far: world-space z bounds (near maps to clip z 0, far to 1)
func Orthographic(out []float32, left, right, bottom, top, near, far float32) {
	Identity(out)
	out[0] = 2.0 / (right - left)
	out[5] = 2.0 / (top - bottom)
	out[10] = 1.0 / (far - near)
	out[12] = -(right + left) / (right - left)
	out[13] = -(top + bottom) / (top - bottom)
	out[14] = -near / (far - near)
}

// BuildSpriteMatrix constructs a 4x4 model matrix from a 2D position, z layer,
// rotation about the z axis, and per-axis scale. The matrix is column-major with
// the translation in the fourth column, so it composes directly with the camera
// view-projection via Mul4 and uploads as four vec4 instance rows unchanged.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - posX, posY: translation in world space
//   - posZ: z layer written to the translation's third component
//   - rotation: rotation angle in radians around the z axis
//   - scaleX, scaleY: scale factors along each axis
func BuildSpriteMatrix(out []float32, posX, posY, posZ, rotation, scaleX, scaleY float32) {
	c := float32(math.Cos(float64(rotation)))
	s := float32(math.Sin(float64(rotation)))

	out[0] = c * scaleX
	out[1] = s * scaleX
	out[2] = 0
	out[3] = 0

	out[4] = -s * scaleY
	out[5] = c * scaleY
	out[6] = 0
	out[7] = 0

	out[8] = 0
	out[9] = 0
	out[10] = 1
	out[11] = 0

	out[12] = posX
	out[13] = posY
	out[14] = posZ
	out[15] = 1
}
