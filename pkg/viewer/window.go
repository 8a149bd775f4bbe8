// Package viewer is the interactive glfw/OpenGL front end: it opens a
// window, blits the controller's pixel buffer to a full-screen textured
// quad every frame, and translates key state into camera movement and
// mode toggles.
package viewer

import (
	"fmt"
	"runtime"
	"strings"

	gl "github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Window owns the glfw window, the GL program used to display the
// render target, and the texture it uploads each frame. windowWidth/
// windowHeight are the on-screen size; textureWidth/textureHeight are
// the resolution of the rendered image, which under --high-dpi is
// twice the window size — the GPU downsamples the larger texture onto
// the smaller quad when it is drawn.
type Window struct {
	handle  *glfw.Window
	program uint32
	vao     uint32
	texture uint32

	windowWidth, windowHeight   int
	textureWidth, textureHeight int
}

// New creates a glfw window with a compatible OpenGL 3.3 core context
// and compiles the blit shader used to present the path tracer's
// output. textureWidth/textureHeight size the GPU texture the render
// is uploaded into; pass windowWidth/windowHeight for a 1:1 display,
// or doubled values under --high-dpi.
func New(windowWidth, windowHeight, textureWidth, textureHeight int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("viewer: initializing glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	handle, err := glfw.CreateWindow(windowWidth, windowHeight, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("viewer: creating window: %w", err)
	}
	handle.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("viewer: initializing gl: %w", err)
	}

	program, err := newProgram(blitVertexShader, blitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("viewer: building blit program: %w", err)
	}

	w := &Window{
		handle:        handle,
		program:       program,
		windowWidth:   windowWidth,
		windowHeight:  windowHeight,
		textureWidth:  textureWidth,
		textureHeight: textureHeight,
	}
	w.vao = newQuadVAO()
	w.texture = newTexture(textureWidth, textureHeight)

	return w, nil
}

// ShouldClose reports whether the user requested the window close.
func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

// PollEvents processes pending window/input events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// IsKeyPressed reports whether the given glfw key is currently held.
func (w *Window) IsKeyPressed(key glfw.Key) bool {
	return w.handle.GetKey(key) == glfw.Press
}

// Present uploads rgba (textureWidth*textureHeight*4 bytes, the render
// resolution) to the GPU and draws it as a full-screen quad sized to
// the window, then swaps buffers. When textureWidth/Height exceed the
// window's size (--high-dpi), the viewport/quad draw downsamples the
// texture to fit.
func (w *Window) Present(rgba []byte) {
	gl.Viewport(0, 0, int32(w.windowWidth), int32(w.windowHeight))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w.textureWidth), int32(w.textureHeight), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))

	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	w.handle.SwapBuffers()
}

// Destroy tears down the GL resources and the window.
func (w *Window) Destroy() {
	w.handle.Destroy()
	glfw.Terminate()
}

func newTexture(width, height int) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// quadVertices is a full-screen triangle pair in clip space, with UVs
// flipped vertically to match the pixel buffer's top-left row order.
var quadVertices = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	1, 1, 1, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	-1, 1, 0, 0,
}

func newQuadVAO() uint32 {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	const stride = 4 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)

	gl.BindVertexArray(0)
	return vao
}

const blitVertexShader = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
out vec2 vUV;
void main() {
	vUV = aUV;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const blitFragmentShader = `
#version 330 core
in vec2 vUV;
out vec4 FragColor;
uniform sampler2D uTex;
void main() {
	FragColor = texture(uTex, vUV);
}
` + "\x00"

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}
	return shader, nil
}
