package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/vox2obj/internal/export"
)

// createTestVOXFile writes a scene with two adjacent voxels in model 0 and
// a single voxel in model 1.
func createTestVOXFile(t *testing.T) string {
	t.Helper()

	chunk := func(id string, content []byte) []byte {
		buf := new(bytes.Buffer)
		buf.WriteString(id)
		binary.Write(buf, binary.LittleEndian, uint32(len(content)))
		binary.Write(buf, binary.LittleEndian, uint32(0))
		buf.Write(content)
		return buf.Bytes()
	}
	xyzi := func(voxels ...[4]byte) []byte {
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, uint32(len(voxels)))
		for _, v := range voxels {
			buf.Write(v[:])
		}
		return chunk("XYZI", buf.Bytes())
	}

	var children bytes.Buffer
	children.Write(chunk("SIZE", make([]byte, 12)))
	children.Write(xyzi([4]byte{0, 0, 0, 1}, [4]byte{1, 0, 0, 2}))
	children.Write(chunk("SIZE", make([]byte, 12)))
	children.Write(xyzi([4]byte{5, 5, 5, 3}))
	children.Write(chunk("LAYR", []byte{1, 2, 3, 4}))

	buf := new(bytes.Buffer)
	buf.WriteString("VOX ")
	binary.Write(buf, binary.LittleEndian, int32(150))
	buf.WriteString("MAIN")
	binary.Write(buf, binary.LittleEndian, uint32(0))
	binary.Write(buf, binary.LittleEndian, uint32(children.Len()))
	buf.Write(children.Bytes())

	path := filepath.Join(t.TempDir(), "scene.vox")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// chdirTemp runs the test in an empty directory so no config file is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestConvert_DefaultOutput(t *testing.T) {
	input := createTestVOXFile(t)
	dir := chdirTemp(t)

	var out bytes.Buffer
	if err := cmdConvert([]string{input}, &out); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	obj, err := os.ReadFile(filepath.Join(dir, "output.obj"))
	if err != nil {
		t.Fatalf("output.obj not written: %v", err)
	}
	text := string(obj)
	if n := strings.Count(text, "\nf "); n != 10 {
		t.Errorf("expected 10 faces, got %d", n)
	}
	if !strings.Contains(text, "\nvn ") {
		t.Error("expected normals by default")
	}
	if !strings.Contains(out.String(), "10 faces, 40 vertices, 2 materials") {
		t.Errorf("unexpected stdout: %s", out.String())
	}
}

func TestConvert_Options(t *testing.T) {
	input := createTestVOXFile(t)
	dir := chdirTemp(t)
	output := filepath.Join(dir, "dot.obj")

	var out bytes.Buffer
	args := []string{"-model", "1", "-no-normals", "-mtl", "-compress", "zstd", input, output}
	if err := cmdConvert(args, &out); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	r, err := export.Open(output + ".zst")
	if err != nil {
		t.Fatalf("compressed output missing: %v", err)
	}
	defer r.Close()
	var obj bytes.Buffer
	if _, err := obj.ReadFrom(r); err != nil {
		t.Fatal(err)
	}

	text := obj.String()
	if !strings.HasPrefix(text, "mtllib dot.mtl\n") {
		t.Errorf("missing mtllib line:\n%s", text)
	}
	if strings.Contains(text, "vn ") || strings.Contains(text, "//") {
		t.Error("normals should be omitted")
	}
	if !strings.Contains(text, "f 1 2 3 4\n") {
		t.Errorf("expected plain face indices:\n%s", text)
	}
	if _, err := os.Stat(filepath.Join(dir, "dot.mtl")); err != nil {
		t.Errorf("MTL not written: %v", err)
	}
}

func TestConvert_GLB(t *testing.T) {
	input := createTestVOXFile(t)
	dir := chdirTemp(t)
	output := filepath.Join(dir, "scene.glb")

	var out bytes.Buffer
	if err := cmdConvert([]string{"-format", "glb", input, output}, &out); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	doc, err := gltf.Open(output)
	if err != nil {
		t.Fatalf("gltf.Open failed: %v", err)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 2 {
		t.Errorf("unexpected meshes: %+v", doc.Meshes)
	}
}

func TestConvert_Errors(t *testing.T) {
	input := createTestVOXFile(t)
	chdirTemp(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"missing file", []string{"missing.vox"}},
		{"model out of range", []string{"-model", "5", input}},
		{"bad format", []string{"-format", "fbx", input}},
		{"bad compression", []string{"-compress", "lz4", input}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := cmdConvert(tt.args, &out); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestInfo(t *testing.T) {
	input := createTestVOXFile(t)
	chdirTemp(t)

	var out bytes.Buffer
	if err := cmdInfo([]string{"-workers", "2", input}, &out); err != nil {
		t.Fatalf("info failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Models:     2 (3 voxels)",
		"[0] voxels=2      faces=10",
		"[1] voxels=1      faces=6",
		"model 1 shape -1 at 0 0 0",
		"Warnings: 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("info output missing %q:\n%s", want, text)
		}
	}
}

func TestDump(t *testing.T) {
	input := createTestVOXFile(t)
	chdirTemp(t)

	var out bytes.Buffer
	if err := cmdDump([]string{input}, &out); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "# scene.vox\n") {
		t.Errorf("unexpected dump header:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "LAYR") {
		t.Errorf("dump should include decoder warnings:\n%s", out.String())
	}
}

func TestConfig_SaveTo(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "out", "vox2obj.yaml")

	var out bytes.Buffer
	if err := cmdConfig([]string{"-format", "glb", "-mtl", path}, &out); err != nil {
		t.Fatalf("config failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	for _, want := range []string{"format: glb", "materials: true"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved config missing %q:\n%s", want, data)
		}
	}
	if !strings.Contains(out.String(), "Saved: "+path) {
		t.Errorf("unexpected stdout: %s", out.String())
	}
}

func TestConfig_SaveUserDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("user config dir follows XDG_CONFIG_HOME only on linux")
	}
	dir := chdirTemp(t)

	var out bytes.Buffer
	if err := cmdConfig([]string{"-workers", "3"}, &out); err != nil {
		t.Fatalf("config failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "vox2obj", "vox2obj.yaml"))
	if err != nil {
		t.Fatalf("config not written to user dir: %v", err)
	}
	if !strings.Contains(string(data), "workers: 3") {
		t.Errorf("saved config missing workers:\n%s", data)
	}
}
