package glbackend

import (
	_ "embed"
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"
)

//go:embed shaders/default.vert
var defaultVertexShader string

//go:embed shaders/default.frag
var defaultFragmentShader string

const (
	attribPosition = 0
	attribColor    = 1
)

type Program struct {
	Id                           uint32
	VertexShader, FragmentShader uint32
}

func (p *Program) Delete() {
	gl.DetachShader(p.Id, p.VertexShader)
	gl.DetachShader(p.Id, p.FragmentShader)
	gl.DeleteProgram(p.Id)
	gl.DeleteShader(p.VertexShader)
	gl.DeleteShader(p.FragmentShader)
}

func LoadProgram(vertexShaderText, fragmentShaderText string) (*Program, error) {
	p := &Program{}

	p.Id = gl.CreateProgram()

	if vs, err := LoadShader(gl.VERTEX_SHADER, vertexShaderText); err != nil {
		gl.DeleteProgram(p.Id)
		return nil, errors.Wrap(err, "vertex shader")
	} else {
		p.VertexShader = vs
	}

	if fs, err := LoadShader(gl.FRAGMENT_SHADER, fragmentShaderText); err != nil {
		gl.DeleteShader(p.VertexShader)
		gl.DeleteProgram(p.Id)
		return nil, errors.Wrap(err, "fragment shader")
	} else {
		p.FragmentShader = fs
	}

	gl.AttachShader(p.Id, p.VertexShader)
	gl.AttachShader(p.Id, p.FragmentShader)
	gl.LinkProgram(p.Id)

	var isLinked int32
	gl.GetProgramiv(p.Id, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(p.Id, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetProgramInfoLog(p.Id, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		log.Printf("[gl] Failed to link program:\n%s", errString)

		p.Delete()
		return nil, errors.Errorf("failed to link program: %q", errString)
	}
	return p, nil
}

func LoadShader(xtype uint32, text string) (shader uint32, err error) {
	csource, free := gl.Strs(text + "\x00")
	defer free()

	shader = gl.CreateShader(xtype)
	gl.ShaderSource(shader, 1, csource, nil)
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetShaderInfoLog(shader, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		log.Printf("[gl] Failed to compile shader:\n%s", errString)

		gl.DeleteShader(shader)
		return gl.INVALID_INDEX, errors.Errorf("failed to compile shader: %q", errString)
	}
	return shader, nil
}
