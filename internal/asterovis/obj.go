package asterovis

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadOBJ reads a Wavefront OBJ shape model: `v` records become vertices,
// `f` records become faces (1-indexed; texture/normal sub-indices after a
// slash are ignored; polygons are fan-triangulated). Everything else in the
// file is skipped.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var vertices []Point3
	var faces [][3]int

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: vertex needs 3 coordinates", path, line)
			}
			var p Point3
			var errX, errY, errZ error
			p.X, errX = strconv.ParseFloat(fields[1], 64)
			p.Y, errY = strconv.ParseFloat(fields[2], 64)
			p.Z, errZ = strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil || errZ != nil {
				return nil, fmt.Errorf("%s:%d: bad vertex coordinate", path, line)
			}
			vertices = append(vertices, p)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 vertices", path, line)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				if cut := strings.IndexByte(tok, '/'); cut >= 0 {
					tok = tok[:cut]
				}
				vi, err := strconv.Atoi(tok)
				if err != nil || vi < 1 || vi > len(vertices) {
					return nil, fmt.Errorf("%s:%d: bad face index %q", path, line, tok)
				}
				idx = append(idx, vi-1)
			}
			for k := 1; k+1 < len(idx); k++ {
				faces = append(faces, [3]int{idx[0], idx[k], idx[k+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewMesh(vertices, faces)
}
