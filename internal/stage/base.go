package stage

import "github.com/kingrea/combprep/internal/artifact"

// Base provides common plumbing for stages (identity + IO contracts).
type Base struct {
	info    Info
	inputs  []artifact.ArtifactRef
	outputs []artifact.ArtifactRef
}

// NewBase seeds the helper with stage info.
func NewBase(info Info) Base {
	return Base{info: info}
}

// SetInputs declares the required artifacts.
func (b *Base) SetInputs(refs ...artifact.ArtifactRef) {
	b.inputs = append([]artifact.ArtifactRef{}, refs...)
}

// SetOutputs declares the produced artifacts.
func (b *Base) SetOutputs(refs ...artifact.ArtifactRef) {
	b.outputs = append([]artifact.ArtifactRef{}, refs...)
}

// Info implements Stage.Info.
func (b *Base) Info() Info {
	return b.info
}

// Inputs implements Stage.Inputs.
func (b *Base) Inputs() []artifact.ArtifactRef {
	return append([]artifact.ArtifactRef{}, b.inputs...)
}

// Outputs implements Stage.Outputs.
func (b *Base) Outputs() []artifact.ArtifactRef {
	return append([]artifact.ArtifactRef{}, b.outputs...)
}

// IsComplete reports whether every declared output exists with content.
func (b *Base) IsComplete(ctx *Context) (bool, error) {
	if ctx == nil || ctx.Artifacts == nil {
		return false, nil
	}
	for _, ref := range b.outputs {
		res, err := ctx.Artifacts.Check(ref)
		if err != nil {
			return false, err
		}
		if !res.Ready() {
			return false, nil
		}
	}
	return true, nil
}
