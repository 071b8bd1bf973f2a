// SPDX-License-Identifier: Unlicense OR MIT

// Package gltest provides a software stand-in for gl.Functions that
// records every call, tracks object lifetimes and rasterizes indexed
// triangles into an in-memory framebuffer.
package gltest

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gljourney/sierpinski/internal/gl"
)

const (
	// INVALID_OPERATION is reported by GetError for draws without
	// a complete vertex array.
	INVALID_OPERATION = 0x502
	// INVALID_VALUE is reported for operations on unknown objects.
	INVALID_VALUE = 0x501
)

// Kinds of objects tracked by Recorder.
const (
	KindBuffer      = "buffer"
	KindProgram     = "program"
	KindShader      = "shader"
	KindVertexArray = "vertexarray"
)

// Recorder implements gl.Functions in memory.
type Recorder struct {
	// Calls is the log of every function invoked, formatted as
	// "Name(args)".
	Calls []string
	// Created and Deleted count object lifetimes per kind.
	Created map[string]int
	Deleted map[string]int
	// BadDeletes lists deletes of objects that were not alive.
	BadDeletes []string

	// FailCompile makes compilation of the given shader type fail
	// with CompileLog.
	FailCompile gl.Enum
	CompileLog  string
	// FailLink makes every link fail with LinkLog.
	FailLink bool
	LinkLog  string
	// ReturnZero makes the create functions of the given kind
	// return the zero object.
	ReturnZero string
	// InjectError is returned by the next GetError call.
	InjectError gl.Enum
	// FragColor is the color written by draws.
	FragColor [4]byte

	width, height int
	pixels        []byte
	clearColor    [4]float32
	viewport      [4]int

	next     uint
	alive    map[uint]string
	buffers  map[uint][]byte
	shaders  map[uint]*shader
	programs map[uint]*program
	arrays   map[uint]*vertexArray

	arrayBuf  uint
	vertArray uint
	prog      uint
	// elemBuf is the element binding when no vertex array is bound.
	elemBuf uint
	err     gl.Enum
}

type shader struct {
	typ      gl.Enum
	src      string
	compiled bool
}

type program struct {
	attached []uint
	linked   bool
}

type vertexArray struct {
	elemBuf uint
	attribs [16]attrib
}

type attrib struct {
	enabled    bool
	buf        uint
	size       int
	typ        gl.Enum
	normalized bool
	stride     int
	offset     int
}

var _ gl.Functions = (*Recorder)(nil)

// NewRecorder returns a Recorder with a width by height framebuffer.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		Created:   make(map[string]int),
		Deleted:   make(map[string]int),
		FragColor: [4]byte{0xcc, 0x4d, 0x05, 0xff},
		width:     width,
		height:    height,
		pixels:    make([]byte, width*height*4),
		alive:     make(map[uint]string),
		buffers:   make(map[uint][]byte),
		shaders:   make(map[uint]*shader),
		programs:  make(map[uint]*program),
		arrays:    make(map[uint]*vertexArray),
	}
}

func (r *Recorder) record(name string, args ...interface{}) {
	s := name + "("
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(a)
	}
	r.Calls = append(r.Calls, s+")")
}

func (r *Recorder) create(kind string) uint {
	if r.ReturnZero == kind {
		return 0
	}
	r.next++
	r.alive[r.next] = kind
	r.Created[kind]++
	return r.next
}

func (r *Recorder) delete(kind string, v uint) bool {
	if v == 0 {
		return false
	}
	if r.alive[v] != kind {
		r.BadDeletes = append(r.BadDeletes, fmt.Sprintf("%s %d", kind, v))
		r.setErr(INVALID_VALUE)
		return false
	}
	delete(r.alive, v)
	r.Deleted[kind]++
	return true
}

func (r *Recorder) setErr(e gl.Enum) {
	if r.err == gl.NO_ERROR {
		r.err = e
	}
}

// Alive returns the number of live objects of the given kind.
func (r *Recorder) Alive(kind string) int {
	n := 0
	for _, k := range r.alive {
		if k == kind {
			n++
		}
	}
	return n
}

// AttachedStages returns the shader types attached to p.
func (r *Recorder) AttachedStages(p gl.Program) []gl.Enum {
	prog, ok := r.programs[p.V]
	if !ok {
		return nil
	}
	var stages []gl.Enum
	for _, s := range prog.attached {
		stages = append(stages, r.shaders[s].typ)
	}
	return stages
}

// Pixels returns a copy of the framebuffer, bottom row first.
func (r *Recorder) Pixels() []byte {
	return append([]byte(nil), r.pixels...)
}

// ViewportRect returns the last viewport set.
func (r *Recorder) ViewportRect() [4]int {
	return r.viewport
}

func (r *Recorder) AttachShader(p gl.Program, s gl.Shader) {
	r.record("AttachShader", p.V, s.V)
	prog, ok := r.programs[p.V]
	if !ok || r.shaders[s.V] == nil {
		r.setErr(INVALID_VALUE)
		return
	}
	prog.attached = append(prog.attached, s.V)
}

func (r *Recorder) BindBuffer(target gl.Enum, b gl.Buffer) {
	r.record("BindBuffer", target, b.V)
	if b.V != 0 && r.alive[b.V] != KindBuffer {
		r.setErr(INVALID_VALUE)
		return
	}
	switch target {
	case gl.ARRAY_BUFFER:
		r.arrayBuf = b.V
	case gl.ELEMENT_ARRAY_BUFFER:
		if va := r.arrays[r.vertArray]; va != nil {
			va.elemBuf = b.V
		} else {
			r.elemBuf = b.V
		}
	}
}

func (r *Recorder) BindVertexArray(a gl.VertexArray) {
	r.record("BindVertexArray", a.V)
	if a.V != 0 && r.arrays[a.V] == nil {
		r.setErr(INVALID_VALUE)
		return
	}
	r.vertArray = a.V
}

func (r *Recorder) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	r.record("BufferData", target, len(src), usage)
	var b uint
	switch target {
	case gl.ARRAY_BUFFER:
		b = r.arrayBuf
	case gl.ELEMENT_ARRAY_BUFFER:
		b = r.elemBuf
		if va := r.arrays[r.vertArray]; va != nil {
			b = va.elemBuf
		}
	}
	if b == 0 {
		r.setErr(INVALID_OPERATION)
		return
	}
	r.buffers[b] = append([]byte(nil), src...)
}

func (r *Recorder) Clear(mask gl.Enum) {
	r.record("Clear", mask)
	if mask&gl.COLOR_BUFFER_BIT == 0 {
		return
	}
	var c [4]byte
	for i, v := range r.clearColor {
		c[i] = byte(math.Round(float64(clamp01(v)) * 255))
	}
	for i := 0; i < len(r.pixels); i += 4 {
		copy(r.pixels[i:i+4], c[:])
	}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
	r.clearColor = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) CompileShader(s gl.Shader) {
	r.record("CompileShader", s.V)
	sh, ok := r.shaders[s.V]
	if !ok {
		r.setErr(INVALID_VALUE)
		return
	}
	sh.compiled = sh.typ != r.FailCompile
}

func (r *Recorder) CreateBuffer() gl.Buffer {
	r.record("CreateBuffer")
	return gl.Buffer{V: r.create(KindBuffer)}
}

func (r *Recorder) CreateProgram() gl.Program {
	r.record("CreateProgram")
	v := r.create(KindProgram)
	if v != 0 {
		r.programs[v] = new(program)
	}
	return gl.Program{V: v}
}

func (r *Recorder) CreateShader(ty gl.Enum) gl.Shader {
	r.record("CreateShader", ty)
	v := r.create(KindShader)
	if v != 0 {
		r.shaders[v] = &shader{typ: ty}
	}
	return gl.Shader{V: v}
}

func (r *Recorder) CreateVertexArray() gl.VertexArray {
	r.record("CreateVertexArray")
	v := r.create(KindVertexArray)
	if v != 0 {
		r.arrays[v] = new(vertexArray)
	}
	return gl.VertexArray{V: v}
}

func (r *Recorder) DeleteBuffer(b gl.Buffer) {
	r.record("DeleteBuffer", b.V)
	if r.delete(KindBuffer, b.V) {
		delete(r.buffers, b.V)
	}
}

func (r *Recorder) DeleteProgram(p gl.Program) {
	r.record("DeleteProgram", p.V)
	r.delete(KindProgram, p.V)
}

func (r *Recorder) DeleteShader(s gl.Shader) {
	r.record("DeleteShader", s.V)
	// Attached shaders keep their record so AttachedStages still
	// reports them, as GL does until the program is deleted.
	r.delete(KindShader, s.V)
}

func (r *Recorder) DeleteVertexArray(a gl.VertexArray) {
	r.record("DeleteVertexArray", a.V)
	if r.delete(KindVertexArray, a.V) {
		delete(r.arrays, a.V)
		if r.vertArray == a.V {
			r.vertArray = 0
		}
	}
}

func (r *Recorder) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	r.record("DrawElements", mode, count, ty, offset)
	va := r.arrays[r.vertArray]
	prog := r.programs[r.prog]
	if va == nil || prog == nil || !prog.linked || va.elemBuf == 0 || mode != gl.TRIANGLES || ty != gl.UNSIGNED_INT {
		r.setErr(INVALID_OPERATION)
		return
	}
	a := va.attribs[0]
	if !a.enabled || a.typ != gl.FLOAT || a.size < 2 {
		r.setErr(INVALID_OPERATION)
		return
	}
	idx := r.buffers[va.elemBuf]
	verts := r.buffers[a.buf]
	if offset+count*4 > len(idx) {
		r.setErr(INVALID_OPERATION)
		return
	}
	stride := a.stride
	if stride == 0 {
		stride = a.size * 4
	}
	vertex := func(i uint32) ([2]float32, bool) {
		o := a.offset + int(i)*stride
		if o+8 > len(verts) {
			return [2]float32{}, false
		}
		x := math.Float32frombits(binary.LittleEndian.Uint32(verts[o:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(verts[o+4:]))
		return [2]float32{x, y}, true
	}
	for t := 0; t+3 <= count; t += 3 {
		var tri [3][2]float32
		for k := 0; k < 3; k++ {
			i := binary.LittleEndian.Uint32(idx[offset+(t+k)*4:])
			v, ok := vertex(i)
			if !ok {
				r.setErr(INVALID_OPERATION)
				return
			}
			tri[k] = v
		}
		r.fill(tri)
	}
}

// fill rasterizes the triangle given in normalized device coordinates,
// sampling at pixel centers.
func (r *Recorder) fill(tri [3][2]float32) {
	var p [3][2]float64
	for i, v := range tri {
		p[i][0] = (float64(v[0]) + 1) / 2 * float64(r.width)
		p[i][1] = (float64(v[1]) + 1) / 2 * float64(r.height)
	}
	edge := func(a, b [2]float64, x, y float64) float64 {
		return (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
	}
	area := edge(p[0], p[1], p[2][0], p[2][1])
	if area == 0 {
		return
	}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			cx, cy := float64(x)+.5, float64(y)+.5
			w0 := edge(p[1], p[2], cx, cy) / area
			w1 := edge(p[2], p[0], cx, cy) / area
			w2 := edge(p[0], p[1], cx, cy) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			o := (y*r.width + x) * 4
			copy(r.pixels[o:o+4], r.FragColor[:])
		}
	}
}

func (r *Recorder) EnableVertexAttribArray(a gl.Attrib) {
	r.record("EnableVertexAttribArray", a)
	va := r.arrays[r.vertArray]
	if va == nil || int(a) >= len(va.attribs) {
		r.setErr(INVALID_OPERATION)
		return
	}
	va.attribs[a].enabled = true
}

func (r *Recorder) GetError() gl.Enum {
	r.record("GetError")
	if e := r.InjectError; e != gl.NO_ERROR {
		r.InjectError = gl.NO_ERROR
		return e
	}
	e := r.err
	r.err = gl.NO_ERROR
	return e
}

func (r *Recorder) GetProgrami(p gl.Program, pname gl.Enum) int {
	r.record("GetProgrami", p.V, pname)
	prog, ok := r.programs[p.V]
	if !ok {
		r.setErr(INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		if prog.linked {
			return gl.TRUE
		}
		return gl.FALSE
	}
	return 0
}

func (r *Recorder) GetProgramInfoLog(p gl.Program) string {
	r.record("GetProgramInfoLog", p.V)
	if prog := r.programs[p.V]; prog != nil && !prog.linked {
		return r.LinkLog
	}
	return ""
}

func (r *Recorder) GetShaderi(s gl.Shader, pname gl.Enum) int {
	r.record("GetShaderi", s.V, pname)
	sh, ok := r.shaders[s.V]
	if !ok {
		r.setErr(INVALID_VALUE)
		return 0
	}
	if pname == gl.COMPILE_STATUS && sh.compiled {
		return gl.TRUE
	}
	return gl.FALSE
}

func (r *Recorder) GetShaderInfoLog(s gl.Shader) string {
	r.record("GetShaderInfoLog", s.V)
	if sh := r.shaders[s.V]; sh != nil && !sh.compiled {
		return r.CompileLog
	}
	return ""
}

func (r *Recorder) GetString(pname gl.Enum) string {
	r.record("GetString", pname)
	switch pname {
	case gl.VERSION:
		return "3.3.0 gltest"
	case gl.RENDERER:
		return "gltest software rasterizer"
	}
	return ""
}

func (r *Recorder) LinkProgram(p gl.Program) {
	r.record("LinkProgram", p.V)
	prog, ok := r.programs[p.V]
	if !ok {
		r.setErr(INVALID_VALUE)
		return
	}
	var vs, fs bool
	for _, s := range prog.attached {
		sh := r.shaders[s]
		if !sh.compiled {
			continue
		}
		switch sh.typ {
		case gl.VERTEX_SHADER:
			vs = true
		case gl.FRAGMENT_SHADER:
			fs = true
		}
	}
	prog.linked = vs && fs && !r.FailLink
}

func (r *Recorder) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	r.record("ReadPixels", x, y, width, height, format, ty)
	if format != gl.RGBA || ty != gl.UNSIGNED_BYTE || len(data) < width*height*4 {
		r.setErr(INVALID_OPERATION)
		return
	}
	for row := 0; row < height; row++ {
		sy := y + row
		if sy < 0 || sy >= r.height {
			continue
		}
		for col := 0; col < width; col++ {
			sx := x + col
			if sx < 0 || sx >= r.width {
				continue
			}
			src := (sy*r.width + sx) * 4
			dst := (row*width + col) * 4
			copy(data[dst:dst+4], r.pixels[src:src+4])
		}
	}
}

func (r *Recorder) ShaderSource(s gl.Shader, src string) {
	r.record("ShaderSource", s.V, len(src))
	sh, ok := r.shaders[s.V]
	if !ok {
		r.setErr(INVALID_VALUE)
		return
	}
	sh.src = src
}

func (r *Recorder) UseProgram(p gl.Program) {
	r.record("UseProgram", p.V)
	if p.V != 0 && r.programs[p.V] == nil {
		r.setErr(INVALID_VALUE)
		return
	}
	r.prog = p.V
}

func (r *Recorder) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
	va := r.arrays[r.vertArray]
	if va == nil || r.arrayBuf == 0 || int(dst) >= len(va.attribs) {
		r.setErr(INVALID_OPERATION)
		return
	}
	a := &va.attribs[dst]
	a.buf = r.arrayBuf
	a.size = size
	a.typ = ty
	a.normalized = normalized
	a.stride = stride
	a.offset = offset
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
	r.viewport = [4]int{x, y, width, height}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
