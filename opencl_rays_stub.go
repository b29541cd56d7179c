//go:build !opencl

package main

import (
	"errors"

	"sightline/internal/sightline"
)

type openCLRayResolver struct{}

func newOpenCLRayResolver(_ *sightline.Grid, _ int) (*openCLRayResolver, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (r *openCLRayResolver) ResolveAll(sightline.Point, []sightline.Ray, *sightline.Grid, sightline.Bounds, sightline.SearchParams) error {
	return errors.New("OpenCL ray resolver unavailable")
}

func (r *openCLRayResolver) Close() {}

func (r *openCLRayResolver) DeviceName() string { return "" }
