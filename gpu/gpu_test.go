// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gljourney/sierpinski/internal/f32color"
	"github.com/gljourney/sierpinski/internal/gl"
	"github.com/gljourney/sierpinski/internal/gl/gltest"
	"github.com/gljourney/sierpinski/mesh"
	"github.com/gljourney/sierpinski/shader"
)

var clearCol = f32color.RGBA{R: .07, G: .13, B: .17, A: 1}

func newTestDevice(t *testing.T, size int) (*Device, *gltest.Recorder) {
	t.Helper()
	r := gltest.NewRecorder(size, size)
	r.FragColor = [4]byte{0xcc, 0x4d, 0x05, 0xff}
	return NewDevice(r), r
}

func TestNewMeshCallOrder(t *testing.T) {
	d, r := newTestDevice(t, 1)
	m, err := d.NewMesh(mesh.Sierpinski())
	if err != nil {
		t.Fatal(err)
	}
	defer m.Release()
	if got := m.Count(); got != 9 {
		t.Errorf("got count %d, expected 9", got)
	}
	calls := strings.Join(r.Calls, "\n")
	want := []string{
		"CreateVertexArray()",
		"CreateBuffer()",
		"CreateBuffer()",
		"BindVertexArray(1)",
		"BindBuffer(34962, 2)",
		"BufferData(34962, 72, 35044)",
		"BindBuffer(34963, 3)",
		"BufferData(34963, 36, 35044)",
		"VertexAttribPointer(0, 3, 5126, false, 12, 0)",
		"EnableVertexAttribArray(0)",
		"BindBuffer(34962, 0)",
		"BindVertexArray(0)",
		"BindBuffer(34963, 0)",
	}
	if !strings.Contains(calls, strings.Join(want, "\n")) {
		t.Errorf("unexpected setup sequence:\n%s", calls)
	}
	if got := r.Created[gltest.KindBuffer]; got != 2 {
		t.Errorf("got %d buffers, expected 2", got)
	}
	if got := r.Created[gltest.KindVertexArray]; got != 1 {
		t.Errorf("got %d vertex arrays, expected 1", got)
	}
}

func TestNewMeshInvalid(t *testing.T) {
	d, r := newTestDevice(t, 1)
	bad := mesh.Mesh{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:  []uint32{0, 1, 6},
	}
	if _, err := d.NewMesh(bad); err == nil {
		t.Fatal("expected error for out of range index")
	}
	if len(r.Calls) != 0 {
		t.Errorf("invalid mesh reached the driver: %v", r.Calls)
	}
}

func TestNewMeshCreateFails(t *testing.T) {
	d, r := newTestDevice(t, 1)
	r.ReturnZero = gltest.KindBuffer
	if _, err := d.NewMesh(mesh.Sierpinski()); err == nil {
		t.Fatal("expected error")
	}
	checkNoMeshLeaks(t, r)
}

func TestNewMeshGLError(t *testing.T) {
	r := gltest.NewRecorder(1, 1)
	d := NewDevice(&failingGetError{Recorder: r})
	_, err := d.NewMesh(mesh.Sierpinski())
	if err == nil || !strings.Contains(err.Error(), "glGetError: 0x502") {
		t.Fatalf("got error %v, expected a glGetError failure", err)
	}
	checkNoMeshLeaks(t, r)
}

func checkNoMeshLeaks(t *testing.T, r *gltest.Recorder) {
	t.Helper()
	for _, kind := range []string{gltest.KindBuffer, gltest.KindVertexArray} {
		if n := r.Alive(kind); n != 0 {
			t.Errorf("%d %s objects leaked", n, kind)
		}
	}
	if len(r.BadDeletes) > 0 {
		t.Errorf("bad deletes: %v", r.BadDeletes)
	}
}

// failingGetError reports an error from every GetError call after
// the first.
type failingGetError struct {
	*gltest.Recorder
	n int
}

func (f *failingGetError) GetError() gl.Enum {
	f.Recorder.GetError()
	f.n++
	if f.n > 1 {
		return gltest.INVALID_OPERATION
	}
	return gl.NO_ERROR
}

func TestReleaseOnce(t *testing.T) {
	d, r := newTestDevice(t, 1)
	m, err := d.NewMesh(mesh.Sierpinski())
	if err != nil {
		t.Fatal(err)
	}
	p, err := d.NewProgram(shader.Sources())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		m.Release()
		p.Release()
	}
	want := map[string]int{
		gltest.KindBuffer:      2,
		gltest.KindVertexArray: 1,
		gltest.KindProgram:     1,
		gltest.KindShader:      2,
	}
	for kind, n := range want {
		if got := r.Deleted[kind]; got != n {
			t.Errorf("%s: got %d deletes, expected %d", kind, got, n)
		}
		if got := r.Alive(kind); got != 0 {
			t.Errorf("%s: %d alive after release", kind, got)
		}
	}
	if len(r.BadDeletes) > 0 {
		t.Errorf("bad deletes: %v", r.BadDeletes)
	}
	if p.Object().Valid() {
		t.Error("program object valid after release")
	}
}

func TestProgramStages(t *testing.T) {
	d, r := newTestDevice(t, 1)
	p, err := d.NewProgram(shader.Sources())
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release()
	stages := r.AttachedStages(p.Object())
	if len(stages) != 2 || stages[0] != gl.VERTEX_SHADER || stages[1] != gl.FRAGMENT_SHADER {
		t.Errorf("got stages %v", stages)
	}
	if n := r.Alive(gltest.KindShader); n != 0 {
		t.Errorf("%d shader objects alive after link", n)
	}
}

func TestDrawSierpinski(t *testing.T) {
	const size = 64
	d, _ := newTestDevice(t, size)
	var scope Scope
	defer scope.Release()
	p, err := d.NewProgram(shader.Sources())
	if err != nil {
		t.Fatal(err)
	}
	scope.Add(p)
	m, err := d.NewMesh(mesh.Sierpinski())
	if err != nil {
		t.Fatal(err)
	}
	scope.Add(m)

	d.Clear(clearCol)
	d.Draw(p, m)
	img, err := d.Screenshot(image.Pt(size, size))
	if err != nil {
		t.Fatal(err)
	}
	bg := clearCol.NRGBA()
	fg := shader.Color.NRGBA()
	tests := []struct {
		name string
		ndc  mgl32.Vec2
		want color.NRGBA
	}{
		{"center", mgl32.Vec2{0, 0}, bg},
		{"corner", mgl32.Vec2{.9, .9}, bg},
		{"upper", mgl32.Vec2{0, .29}, fg},
		{"lower left", mgl32.Vec2{-.25, -.14}, fg},
		{"lower right", mgl32.Vec2{.25, -.14}, fg},
	}
	for _, test := range tests {
		pt := ndcToPixel(test.ndc, size)
		c := img.RGBAAt(pt.X, pt.Y)
		if got := (color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}); got != test.want {
			t.Errorf("%s %v: got color %v, expected %v", test.name, pt, got, test.want)
		}
	}
}

func TestScopeReleaseOrder(t *testing.T) {
	var order []int
	var s Scope
	for i := 0; i < 3; i++ {
		i := i
		s.Add(releaseFunc(func() { order = append(order, i) }))
	}
	if s.Len() != 3 {
		t.Fatalf("got %d objects, expected 3", s.Len())
	}
	s.Release()
	s.Release()
	if len(order) != 3 || order[0] != 2 || order[1] != 1 || order[2] != 0 {
		t.Errorf("got release order %v, expected [2 1 0]", order)
	}
}

func TestScreenshotSize(t *testing.T) {
	d, _ := newTestDevice(t, 1)
	if _, err := d.Screenshot(image.Point{}); err == nil {
		t.Error("expected error for empty screenshot")
	}
}

func TestInfo(t *testing.T) {
	d, _ := newTestDevice(t, 1)
	info, err := d.Info()
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != [2]int{3, 3} {
		t.Errorf("got version %v", info.Version)
	}
	if info.Renderer == "" {
		t.Error("empty renderer")
	}
}

type releaseFunc func()

func (f releaseFunc) Release() { f() }

// ndcToPixel maps normalized device coordinates to image coordinates
// with the origin in the top left corner.
func ndcToPixel(p mgl32.Vec2, size int) image.Point {
	x := int((p.X() + 1) / 2 * float32(size))
	y := int((p.Y() + 1) / 2 * float32(size))
	return image.Pt(x, size-1-y)
}

func TestNewMeshStaleErrors(t *testing.T) {
	d, r := newTestDevice(t, 1)
	// Leave two error flags pending.
	r.DeleteBuffer(gl.Buffer{V: 42})
	r.InjectError = 0x505
	r.BadDeletes = nil
	m, err := d.NewMesh(mesh.Sierpinski())
	if err != nil {
		t.Fatalf("stale errors failed mesh setup: %v", err)
	}
	m.Release()
	checkNoMeshLeaks(t, r)
}

func TestScreenshotStaleErrors(t *testing.T) {
	d, r := newTestDevice(t, 2)
	r.DeleteBuffer(gl.Buffer{V: 42})
	r.InjectError = 0x505
	if _, err := d.Screenshot(image.Pt(2, 2)); err != nil {
		t.Fatalf("stale errors failed screenshot: %v", err)
	}
}

func TestNewProgramSources(t *testing.T) {
	vs := shader.Source{Stage: shader.StageVertex, Text: shader.Vertex}
	fs := shader.Source{Stage: shader.StageFragment, Text: shader.Fragment}
	tests := []struct {
		name string
		srcs [2]shader.Source
		want string
	}{
		{"in order", [2]shader.Source{vs, fs}, ""},
		{"reversed", [2]shader.Source{fs, vs}, ""},
		{"two vertex", [2]shader.Source{vs, vs}, "duplicate vertex shader"},
		{"two fragment", [2]shader.Source{fs, fs}, "duplicate fragment shader"},
		{"unknown stage", [2]shader.Source{vs, {Stage: 7}}, "unknown shader stage 7"},
	}
	for _, test := range tests {
		d, r := newTestDevice(t, 1)
		p, err := d.NewProgram(test.srcs)
		if test.want == "" {
			if err != nil {
				t.Errorf("%s: %v", test.name, err)
				continue
			}
			stages := r.AttachedStages(p.Object())
			if len(stages) != 2 || stages[0] != gl.VERTEX_SHADER || stages[1] != gl.FRAGMENT_SHADER {
				t.Errorf("%s: got stages %v", test.name, stages)
			}
			p.Release()
			continue
		}
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: got error %v, expected %q", test.name, err, test.want)
		}
		if len(r.Calls) > 0 {
			t.Errorf("%s: OpenGL called for rejected sources: %v", test.name, r.Calls)
		}
	}
}
