//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"sightline/internal/sightline"
)

// openCLRayResolver runs the per-ray length sweep on an OpenCL device, one
// work item per ray. The wall set is uploaded once since grids never change.
type openCLRayResolver struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	rayBuf     *cl.MemObject
	wallBuf    *cl.MemObject
	magnifyBuf *cl.MemObject
	grid       *sightline.Grid
	rayCount   int
	wallCount  int
	rayData    []float32
	magnify    []float32
	deviceName string
}

const rayKernelSource = `__kernel void resolve_rays(
    const int ray_count,
    const float origin_x,
    const float origin_y,
    __global const float* dirs,
    __global const float* walls,
    const int wall_count,
    const float min_x,
    const float min_y,
    const float max_x,
    const float max_y,
    const float base_magnify,
    const float step,
    const float clearance,
    __global float* magnify_out)
{
    int i = get_global_id(0);
    if (i >= ray_count) {
        return;
    }
    float dx = dirs[2 * i];
    float dy = dirs[2 * i + 1];
    float stride = sqrt(dx * dx + dy * dy) * step;
    int limit = 1;
    if (stride > 0.0f) {
        float reach = 0.0f;
        reach = fmax(reach, hypot(min_x - origin_x, min_y - origin_y));
        reach = fmax(reach, hypot(max_x - origin_x, min_y - origin_y));
        reach = fmax(reach, hypot(min_x - origin_x, max_y - origin_y));
        reach = fmax(reach, hypot(max_x - origin_x, max_y - origin_y));
        limit = (int)ceil(reach / stride) + 2;
    }
    float m = base_magnify;
    for (int k = 0; k < limit; k++) {
        m = base_magnify + (float)k * step;
        float px = origin_x + dx * m;
        float py = origin_y + dy * m;
        if (px < min_x || px > max_x || py < min_y || py > max_y) {
            break;
        }
        int blocked = 0;
        for (int w = 0; w < wall_count; w++) {
            __global const float* r = walls + 4 * w;
            if (px + clearance >= r[0] && px - clearance <= r[1] &&
                py + clearance >= r[2] && py - clearance <= r[3]) {
                blocked = 1;
                break;
            }
        }
        if (blocked) {
            break;
        }
        m += step;
    }
    magnify_out[i] = fmax(m - step, 0.0f);
}`

func newOpenCLRayResolver(grid *sightline.Grid, rayCount int) (*openCLRayResolver, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	r := &openCLRayResolver{
		grid:       grid,
		rayCount:   rayCount,
		rayData:    make([]float32, 2*rayCount),
		magnify:    make([]float32, rayCount),
		deviceName: device.Name(),
	}
	if err := r.init(device); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// init builds the program and uploads the walls. On error the caller releases
// whatever was created.
func (r *openCLRayResolver) init(device *cl.Device) error {
	var err error
	if r.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return fmt.Errorf("creating OpenCL context: %w", err)
	}
	if r.queue, err = r.context.CreateCommandQueue(device, 0); err != nil {
		return fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if r.program, err = r.context.CreateProgramWithSource([]string{rayKernelSource}); err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := r.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	if r.kernel, err = r.program.CreateKernel("resolve_rays"); err != nil {
		return fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	floatSize := int(unsafe.Sizeof(float32(0)))
	if r.rayBuf, err = r.context.CreateEmptyBuffer(cl.MemReadOnly, 2*r.rayCount*floatSize); err != nil {
		return fmt.Errorf("allocating ray buffer: %w", err)
	}
	if r.magnifyBuf, err = r.context.CreateEmptyBuffer(cl.MemWriteOnly, r.rayCount*floatSize); err != nil {
		return fmt.Errorf("allocating magnify buffer: %w", err)
	}

	colliders := r.grid.Colliders()
	r.wallCount = len(colliders)
	// Zero-sized buffers are invalid; keep one dummy rectangle.
	wallData := make([]float32, 4*max(r.wallCount, 1))
	for i, w := range colliders {
		wallData[4*i] = float32(w.XMin)
		wallData[4*i+1] = float32(w.XMax)
		wallData[4*i+2] = float32(w.YMin)
		wallData[4*i+3] = float32(w.YMax)
	}
	if r.wallBuf, err = r.context.CreateEmptyBuffer(cl.MemReadOnly, len(wallData)*floatSize); err != nil {
		return fmt.Errorf("allocating wall buffer: %w", err)
	}
	if _, err := r.queue.EnqueueWriteBufferFloat32(r.wallBuf, true, 0, wallData, nil); err != nil {
		return fmt.Errorf("writing wall buffer: %w", err)
	}
	return nil
}

// ResolveAll implements sightline.Resolver.
func (r *openCLRayResolver) ResolveAll(origin sightline.Point, rays []sightline.Ray, grid *sightline.Grid, bounds sightline.Bounds, p sightline.SearchParams) error {
	if grid != r.grid {
		return errors.New("OpenCL resolver was built for a different grid")
	}
	if len(rays) != r.rayCount {
		return fmt.Errorf("OpenCL resolver sized for %d rays, got %d", r.rayCount, len(rays))
	}
	for i, ray := range rays {
		r.rayData[2*i] = float32(ray.Direction.X)
		r.rayData[2*i+1] = float32(ray.Direction.Y)
	}
	if _, err := r.queue.EnqueueWriteBufferFloat32(r.rayBuf, false, 0, r.rayData, nil); err != nil {
		return fmt.Errorf("writing ray buffer: %w", err)
	}
	if err := r.kernel.SetArgs(
		int32(r.rayCount),
		float32(origin.X),
		float32(origin.Y),
		r.rayBuf,
		r.wallBuf,
		int32(r.wallCount),
		float32(bounds.MinX),
		float32(bounds.MinY),
		float32(bounds.MaxX),
		float32(bounds.MaxY),
		float32(p.BaseMagnify),
		float32(p.PrecisionStep),
		float32(p.Clearance),
		r.magnifyBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := r.queue.EnqueueNDRangeKernel(r.kernel, nil, []int{r.rayCount}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing ray kernel: %w", err)
	}
	if _, err := r.queue.EnqueueReadBufferFloat32(r.magnifyBuf, true, 0, r.magnify, nil); err != nil {
		return fmt.Errorf("reading magnify buffer: %w", err)
	}
	for i := range rays {
		rays[i].Magnify = float64(r.magnify[i])
	}
	return nil
}

// Close releases every OpenCL object that was created.
func (r *openCLRayResolver) Close() {
	if r.magnifyBuf != nil {
		r.magnifyBuf.Release()
		r.magnifyBuf = nil
	}
	if r.wallBuf != nil {
		r.wallBuf.Release()
		r.wallBuf = nil
	}
	if r.rayBuf != nil {
		r.rayBuf.Release()
		r.rayBuf = nil
	}
	if r.kernel != nil {
		r.kernel.Release()
		r.kernel = nil
	}
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
	if r.queue != nil {
		r.queue.Release()
		r.queue = nil
	}
	if r.context != nil {
		r.context.Release()
		r.context = nil
	}
}

func (r *openCLRayResolver) DeviceName() string {
	return r.deviceName
}
