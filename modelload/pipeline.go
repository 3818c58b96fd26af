// package modelload implements the two-stage asset pipeline: a
// material-definition file is loaded first, then the geometry file, and the
// decoded object graph is converted into engine-ready mesh data. Parsing is
// delegated to the g3n OBJ/MTL decoder; this package owns only sequencing,
// progress reporting, cancellation, and conversion.
package modelload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"
)

// Load stage failures keep their own identity so callers can report which
// stage broke without string matching.
var (
	// ErrMaterialLoad marks a failure while loading the material-definition file.
	ErrMaterialLoad = errors.New("failed to load materials")

	// ErrGeometryLoad marks a failure while loading or decoding the geometry file.
	ErrGeometryLoad = errors.New("failed to load model geometry")
)

// LoadStage identifies which pipeline stage a progress report belongs to.
type LoadStage int

const (
	// StageMaterials is the material-definition load stage.
	StageMaterials LoadStage = iota

	// StageGeometry is the geometry load stage.
	StageGeometry
)

// String returns the stage name for diagnostics.
func (s LoadStage) String() string {
	switch s {
	case StageMaterials:
		return "materials"
	case StageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// ProgressFunc receives fractional load progress per stage. The fraction is
// monotonic within a stage and reaches 1.0 when the stage's file is fully read.
type ProgressFunc func(stage LoadStage, fraction float64)

// Pipeline loads one material-definition file and one geometry file in strict
// sequence and converts the result into an Asset. The geometry stage begins
// only after the material stage succeeded.
type Pipeline interface {
	// Load runs both stages and the conversion. The context is honored
	// between stages and during file reads; a canceled context aborts the
	// load with the context's error.
	//
	// Parameters:
	//   - ctx: the context bounding the load
	//
	// Returns:
	//   - *Asset: the converted asset
	//   - error: ErrMaterialLoad, ErrGeometryLoad, or the context error
	Load(ctx context.Context) (*Asset, error)
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	name         string
	materialPath string
	geometryPath string
	scale        float32
	progress     ProgressFunc
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline with the provided options. The material
// and geometry paths are required; Load fails on the corresponding stage when
// a path is unset.
//
// Parameters:
//   - options: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		scale: 1,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.name == "" && p.geometryPath != "" {
		base := filepath.Base(p.geometryPath)
		p.name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return p
}

func (p *pipeline) Load(ctx context.Context) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mtlData, err := p.loadMaterials(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objData, err := p.loadGeometry(ctx)
	if err != nil {
		return nil, err
	}

	dec, err := obj.DecodeReader(bytes.NewReader(objData), bytes.NewReader(mtlData))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrGeometryLoad, p.geometryPath, err)
	}

	asset, err := convertDecoded(p.name, dec, p.scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeometryLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return asset, nil
}

// loadMaterials runs the first stage: read the material-definition file with
// progress reporting and check that it declares at least one material, so a
// wrong or empty file fails here instead of surfacing as a geometry error.
func (p *pipeline) loadMaterials(ctx context.Context) ([]byte, error) {
	if p.materialPath == "" {
		return nil, fmt.Errorf("%w: material path not set", ErrMaterialLoad)
	}

	data, err := p.readFile(ctx, StageMaterials, p.materialPath)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrMaterialLoad, p.materialPath, err)
	}
	if !bytes.Contains(data, []byte("newmtl")) {
		return nil, fmt.Errorf("%w: %s declares no materials", ErrMaterialLoad, p.materialPath)
	}
	return data, nil
}

// loadGeometry runs the second stage: read the geometry file with progress
// reporting. Decoding happens afterwards so its errors are attributed here too.
func (p *pipeline) loadGeometry(ctx context.Context) ([]byte, error) {
	if p.geometryPath == "" {
		return nil, fmt.Errorf("%w: geometry path not set", ErrGeometryLoad)
	}

	data, err := p.readFile(ctx, StageGeometry, p.geometryPath)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrGeometryLoad, p.geometryPath, err)
	}
	return data, nil
}

// readFile reads a whole file in chunks, checking the context and reporting
// fractional progress between chunks.
func (p *pipeline) readFile(ctx context.Context, stage LoadStage, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()

	p.report(stage, 0)

	var buf bytes.Buffer
	chunk := make([]byte, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := f.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if size > 0 {
				p.report(stage, float64(buf.Len())/float64(size))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	p.report(stage, 1)
	return buf.Bytes(), nil
}

func (p *pipeline) report(stage LoadStage, fraction float64) {
	if p.progress == nil {
		return
	}
	if fraction > 1 {
		fraction = 1
	}
	p.progress(stage, fraction)
}
