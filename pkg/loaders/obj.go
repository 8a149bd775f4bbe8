// Package loaders parses the narrow set of external file formats the
// renderer's scene presets depend on. It is intentionally minimal: no
// material libraries, texture coordinates, or multi-object grouping,
// since textures are out of scope and every mesh preset uses a single
// uniform material.
package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aharden/lumen/pkg/core"
)

// Triangle is a plain (position, normal) triangle read from a mesh
// file, independent of pkg/scene's Primitive so this package has no
// dependency on the renderer's BVH/material types.
type Triangle struct {
	P1, P2, P3 core.Vec3
	N1, N2, N3 core.Vec3
}

// OBJLoader parses Wavefront OBJ files.
type OBJLoader struct{}

// Load reads v/vn/f records from path. Faces are triangulated with a
// fan from the first vertex if more than three are listed. A face
// record without normal indices falls back to the triangle's
// geometric face normal, consistent with how Primitive treats
// unspecified per-vertex normals.
func (OBJLoader) Load(path string) ([]Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: opening %q: %w", path, err)
	}
	defer f.Close()

	var positions []core.Vec3
	var normals []core.Vec3
	var triangles []Triangle

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loaders: %q line %d: %w", path, lineNo, err)
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loaders: %q line %d: %w", path, lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			faceTriangles, err := parseFace(fields[1:], positions, normals)
			if err != nil {
				return nil, fmt.Errorf("loaders: %q line %d: %w", path, lineNo, err)
			}
			triangles = append(triangles, faceTriangles...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: reading %q: %w", path, err)
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("loaders: %q contains no faces", path)
	}
	return triangles, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

// faceVertex is a single "v/vt/vn" token of a face record.
type faceVertex struct {
	posIdx, normIdx int // 1-based OBJ indices; 0 means absent
}

func parseFaceVertex(tok string) (faceVertex, error) {
	parts := strings.Split(tok, "/")
	pos, err := strconv.Atoi(parts[0])
	if err != nil {
		return faceVertex{}, fmt.Errorf("bad vertex index %q: %w", tok, err)
	}
	fv := faceVertex{posIdx: pos}
	if len(parts) >= 3 && parts[2] != "" {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return faceVertex{}, fmt.Errorf("bad normal index %q: %w", tok, err)
		}
		fv.normIdx = n
	}
	return fv, nil
}

func resolveIndex(idx, count int) int {
	if idx < 0 {
		return count + idx
	}
	return idx - 1
}

func parseFace(fields []string, positions, normals []core.Vec3) ([]Triangle, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}
	verts := make([]faceVertex, len(fields))
	for i, tok := range fields {
		fv, err := parseFaceVertex(tok)
		if err != nil {
			return nil, err
		}
		verts[i] = fv
	}

	vertexAt := func(fv faceVertex) (core.Vec3, core.Vec3, error) {
		pi := resolveIndex(fv.posIdx, len(positions))
		if pi < 0 || pi >= len(positions) {
			return core.Vec3{}, core.Vec3{}, fmt.Errorf("vertex index %d out of range", fv.posIdx)
		}
		pos := positions[pi]
		var n core.Vec3
		hasNormal := fv.normIdx != 0
		if hasNormal {
			ni := resolveIndex(fv.normIdx, len(normals))
			if ni < 0 || ni >= len(normals) {
				return core.Vec3{}, core.Vec3{}, fmt.Errorf("normal index %d out of range", fv.normIdx)
			}
			n = normals[ni]
		}
		return pos, n, nil
	}

	p0, n0, err := vertexAt(verts[0])
	if err != nil {
		return nil, err
	}

	var triangles []Triangle
	for i := 1; i+1 < len(verts); i++ {
		p1, n1, err := vertexAt(verts[i])
		if err != nil {
			return nil, err
		}
		p2, n2, err := vertexAt(verts[i+1])
		if err != nil {
			return nil, err
		}
		face := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
		tri := Triangle{P1: p0, P2: p1, P3: p2}
		tri.N1 = orFaceNormal(n0, face)
		tri.N2 = orFaceNormal(n1, face)
		tri.N3 = orFaceNormal(n2, face)
		triangles = append(triangles, tri)
	}
	return triangles, nil
}

func orFaceNormal(n, face core.Vec3) core.Vec3 {
	if n.IsZero() {
		return face
	}
	return n
}
