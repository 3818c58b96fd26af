package modelload

// PipelineBuilderOption is a function that configures a pipeline.
type PipelineBuilderOption func(*pipeline)

// WithName sets the asset name reported on the converted Asset. When unset the
// geometry file's base name is used.
//
// Parameters:
//   - name: the asset name
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithName(name string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.name = name
	}
}

// WithMaterialPath sets the path of the material-definition file loaded in the
// first stage.
//
// Parameters:
//   - path: the material file path
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithMaterialPath(path string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.materialPath = path
	}
}

// WithGeometryPath sets the path of the geometry file loaded in the second
// stage.
//
// Parameters:
//   - path: the geometry file path
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithGeometryPath(path string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.geometryPath = path
	}
}

// WithScale sets the uniform scale applied to vertex positions during
// conversion. Defaults to 1.
//
// Parameters:
//   - scale: the uniform scale factor
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithScale(scale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		if scale > 0 {
			p.scale = scale
		}
	}
}

// WithProgress sets the callback receiving fractional load progress per stage.
//
// Parameters:
//   - fn: the progress callback
//
// Returns:
//   - PipelineBuilderOption: the option to apply
func WithProgress(fn ProgressFunc) PipelineBuilderOption {
	return func(p *pipeline) {
		p.progress = fn
	}
}
