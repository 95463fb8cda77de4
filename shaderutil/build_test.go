package shaderutil_test

import (
	"testing"

	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/gpu/swref"
	"github.com/hdrscope/pipeline/shaderutil"
)

const minimalFragmentWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
	return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`

func TestBuildStageSucceedsOnSoftwareDevice(t *testing.T) {
	device := swref.NewDevice()
	res, err := shaderutil.BuildStage(device, gpu.StageColorGrade, minimalFragmentWGSL, gpu.FormatRGBA16Float)
	if err != nil {
		t.Fatalf("BuildStage: %v", err)
	}
	if res.Pipeline == nil || res.BindGroupLayout == nil || res.VertexShader == nil || res.FragmentShader == nil {
		t.Fatalf("BuildStage left a nil resource: %+v", res)
	}
	res.Destroy()
}

func TestBuildStageRejectsUnknownStageKind(t *testing.T) {
	device := swref.NewDevice()
	_, err := shaderutil.BuildStage(device, gpu.StageKind("not-a-real-stage"), minimalFragmentWGSL, gpu.FormatRGBA16Float)
	if err == nil {
		t.Fatal("expected an error for a fragment label with no software implementation")
	}
}

func TestStageResourcesDestroyIsNilSafe(t *testing.T) {
	var res *shaderutil.StageResources
	res.Destroy() // must not panic on a nil receiver

	partial := &shaderutil.StageResources{}
	partial.Destroy() // must not panic when every field is nil
}
