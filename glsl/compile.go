package glsl

import (
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Stage identifies the pipeline stage a source belongs to. The offline
// compiler needs it because specialization means source files carry no
// stage suffix of their own.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
)

// CompileFile translates one GLSL source file to SPIR-V at outputPath using
// glslc or glslangValidator, whichever is installed. The translation is
// pure and idempotent; any compiler diagnostic is returned as an error so
// bad shading source fails the build loudly instead of surfacing at
// runtime.
func CompileFile(stage Stage, sourcePath, outputPath string) ([]uint32, error) {
	var cmd *exec.Cmd
	switch {
	case lookPath("glslc"):
		cmd = exec.Command("glslc", "-fshader-stage="+string(stage), sourcePath, "-o", outputPath, "-O")
	case lookPath("glslangValidator"):
		cmd = exec.Command("glslangValidator", "-V", "-S", stageExt(stage), sourcePath, "-o", outputPath)
	default:
		return nil, fmt.Errorf("no shader compiler found (glslc or glslangValidator)")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s shader compilation failed: %w\n%s", stage, err, output)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, err
	}
	return spirvWords(data)
}

// CompileSource compiles in-memory GLSL source, writing the SPIR-V binary
// to outputPath and returning it as 32-bit words.
func CompileSource(stage Stage, source, outputPath string) ([]uint32, error) {
	tempSrc := filepath.Join(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".src")
	if err := os.WriteFile(tempSrc, []byte(source), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tempSrc)

	return CompileFile(stage, tempSrc, outputPath)
}

// spirvWords converts a SPIR-V binary to its 32-bit word form.
func spirvWords(data []byte) ([]uint32, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V binary has invalid length %d", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func stageExt(stage Stage) string {
	if stage == StageVertex {
		return "vert"
	}
	return "frag"
}
