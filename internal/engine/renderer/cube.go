package renderer

// cubeVertexCount is six faces of two triangles each.
const cubeVertexCount = 36

type face struct {
	normal  [3]float32
	corners [4][3]float32 // counter-clockwise seen from outside
}

var cubeFaces = []face{
	{[3]float32{0, 0, 1}, [4][3]float32{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{.5, -.5, -.5}, {-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{.5, -.5, .5}, {.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}}},
}

// cubeVertices returns interleaved position and normal data for a unit cube.
func cubeVertices() []float32 {
	out := make([]float32, 0, cubeVertexCount*6)
	for _, f := range cubeFaces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			c := f.corners[i]
			out = append(out, c[0], c[1], c[2], f.normal[0], f.normal[1], f.normal[2])
		}
	}
	return out
}
