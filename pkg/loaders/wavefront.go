package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// The Wavefront loader implements only a small subset of the OBJ format.
// Lines it does not understand are silently ignored; the result is still
// a valid mesh, it may just look unexpected.
// Supported:
//   - triangles (faces with 3 vertices)
//   - faces must contain normals
//   - faces can contain texture coordinates

type facePoint struct {
	vertex       int
	textureCoord int // 0 means the face carries no texture coordinate
	normal       int
}

type mesh struct {
	vertices      []math.Vec3
	textureCoords []math.Vec2
	normals       []math.Vec3
	faces         [][3]facePoint
}

// LoadWavefront reads an OBJ mesh file and returns its faces as
// triangles with vertices already transformed to world space.
func LoadWavefront(filename string, vertexTransform, normalTransform math.Matrix34) ([]*geometry.Triangle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("mesh obj file %q could not be opened: %w", filename, err)
	}
	defer file.Close()

	return ParseWavefront(file, vertexTransform, normalTransform)
}

// ParseWavefront reads an OBJ mesh from r.
func ParseWavefront(r io.Reader, vertexTransform, normalTransform math.Matrix34) ([]*geometry.Triangle, error) {
	m, err := parseMesh(r)
	if err != nil {
		return nil, err
	}
	return m.triangles(vertexTransform, normalTransform), nil
}

func parseMesh(r io.Reader) (*mesh, error) {
	m := &mesh{}
	var max facePoint // for out of bounds checking of face indices

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if v, ok := parseVec3(fields[1:]); ok {
				m.vertices = append(m.vertices, v)
			}
		case "vt":
			if v, ok := parseVec2(fields[1:]); ok {
				m.textureCoords = append(m.textureCoords, v)
			}
		case "vn":
			if v, ok := parseVec3(fields[1:]); ok {
				m.normals = append(m.normals, v)
			}
		case "f":
			if len(fields) < 4 {
				continue
			}
			var face [3]facePoint
			ok := true
			for i := 0; i < 3; i++ {
				point, valid := parseFacePoint(fields[1+i])
				if !valid {
					ok = false
					break
				}
				face[i] = point
				max.vertex = maxInt(max.vertex, point.vertex)
				max.textureCoord = maxInt(max.textureCoord, point.textureCoord)
				max.normal = maxInt(max.normal, point.normal)
			}
			if ok {
				m.faces = append(m.faces, face)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mesh obj file: %w", err)
	}

	if max.vertex > len(m.vertices) || max.textureCoord > len(m.textureCoords) || max.normal > len(m.normals) {
		return nil, fmt.Errorf("mesh obj file contains an out of bounds index on a face")
	}
	return m, nil
}

// parseFacePoint parses a "v/t/n" or "v//n" face corner. Indices are
// 1-based; a missing texture coordinate is reported as 0.
func parseFacePoint(s string) (facePoint, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return facePoint{}, false
	}

	vertex, err := strconv.Atoi(parts[0])
	if err != nil || vertex <= 0 {
		return facePoint{}, false
	}
	textureCoord := 0
	if parts[1] != "" {
		if textureCoord, err = strconv.Atoi(parts[1]); err != nil || textureCoord <= 0 {
			return facePoint{}, false
		}
	}
	normal, err := strconv.Atoi(parts[2])
	if err != nil || normal <= 0 {
		return facePoint{}, false
	}

	return facePoint{vertex: vertex, textureCoord: textureCoord, normal: normal}, true
}

func (m *mesh) triangles(vertexTransform, normalTransform math.Matrix34) []*geometry.Triangle {
	vertices := make([]math.Vec3, len(m.vertices))
	for i, v := range m.vertices {
		vertices[i] = vertexTransform.Apply(v)
	}
	normals := make([]math.Vec3, len(m.normals))
	for i, n := range m.normals {
		normals[i] = normalTransform.ApplyDirection(n).Normalize()
	}

	triangles := make([]*geometry.Triangle, 0, len(m.faces))
	for _, face := range m.faces {
		var corners [3]geometry.Vertex
		for i, point := range face {
			corners[i] = geometry.Vertex{
				Position: vertices[point.vertex-1],
				Normal:   normals[point.normal-1],
			}
			if point.textureCoord > 0 {
				corners[i].TextureUV = m.textureCoords[point.textureCoord-1]
			}
		}
		triangles = append(triangles, geometry.NewTriangle(corners[0], corners[1], corners[2]))
	}
	return triangles
}

func parseVec3(fields []string) (math.Vec3, bool) {
	if len(fields) < 3 {
		return math.Vec3{}, false
	}
	x, errX := strconv.ParseFloat(fields[0], 32)
	y, errY := strconv.ParseFloat(fields[1], 32)
	z, errZ := strconv.ParseFloat(fields[2], 32)
	if errX != nil || errY != nil || errZ != nil {
		return math.Vec3{}, false
	}
	return math.NewVec3(math.Scalar(x), math.Scalar(y), math.Scalar(z)), true
}

func parseVec2(fields []string) (math.Vec2, bool) {
	if len(fields) < 2 {
		return math.Vec2{}, false
	}
	x, errX := strconv.ParseFloat(fields[0], 32)
	y, errY := strconv.ParseFloat(fields[1], 32)
	if errX != nil || errY != nil {
		return math.Vec2{}, false
	}
	return math.NewVec2(math.Scalar(x), math.Scalar(y)), true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
