package presenter

import (
	_ "embed"
	"fmt"
	"image"
	"log"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed present.wgsl
var presentShader string

// Presenter uploads composited frames to a WebGPU surface and draws them as a fullscreen
// textured triangle. It keeps the last presented frame for screenshot readback.
type Presenter interface {
	// Present uploads frame and shows it on the surface.
	//
	// Parameters:
	//   - frame: the composited frame; it must stay unmodified until the next Render
	//
	// Returns:
	//   - error: error if the surface texture could not be acquired or the frame submitted
	Present(frame *image.RGBA) error

	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: new width in pixels
	//   - height: new height in pixels
	Resize(width, height int)

	// ReadFramebuffer returns the last presented frame, or nil before the first Present.
	//
	// Returns:
	//   - image.Image: the last presented frame
	ReadFramebuffer() image.Image

	// Release frees every GPU resource held by the presenter.
	Release()
}

type presenter struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	width         int
	height        int

	pipeline *wgpu.RenderPipeline
	layout   *wgpu.BindGroupLayout
	sampler  *wgpu.Sampler

	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
	bindGroup    *wgpu.BindGroup
	frameBounds  image.Rectangle

	last image.Image
}

var _ Presenter = &presenter{}

// NewPresenter creates a Presenter on the surface described by descriptor.
//
// Parameters:
//   - descriptor: the platform surface descriptor from the window
//   - width: initial framebuffer width in pixels
//   - height: initial framebuffer height in pixels
//   - options: functional options
//
// Returns:
//   - Presenter: the presenter
//   - error: error if no adapter, device or pipeline could be created
func NewPresenter(descriptor *wgpu.SurfaceDescriptor, width, height int, options ...PresenterBuilderOption) (Presenter, error) {
	if descriptor == nil {
		return nil, fmt.Errorf("presenter: nil surface descriptor")
	}
	runtime.LockOSThread()

	p := &presenter{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
	}
	forceFallback := false
	for _, option := range options {
		option(p, &forceFallback)
	}

	p.instance = wgpu.CreateInstance(nil)
	p.surface = p.instance.CreateSurface(descriptor)

	adapter, err := p.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallback,
		CompatibleSurface:    p.surface,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	p.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Presenter Device"})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	p.device = device
	p.queue = device.GetQueue()

	p.Resize(width, height)

	if err := p.createPipeline(); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (p *presenter) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = width, height

	capabilities := p.surface.GetCapabilities(p.adapter)
	p.surfaceFormat = capabilities.Formats[0]
	p.surface.Configure(p.adapter, p.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      p.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: p.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	log.Printf("[Presenter] surface configured %dx%d", width, height)
}

// createPipeline builds the fullscreen pipeline, its bind group layout and sampler.
func (p *presenter) createPipeline() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	module, err := p.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "present.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: presentShader,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shader module: %w", err)
	}
	defer module.Release()

	layout, err := p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Present Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}
	p.layout = layout

	pipelineLayout, err := p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Present",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	p.pipeline, err = p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Present Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    p.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}

	p.sampler, err = p.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Present Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}
	return nil
}

// ensureFrameTexture recreates the frame texture and bind group when the frame size changes.
// Caller must hold p.mu.
func (p *presenter) ensureFrameTexture(bounds image.Rectangle) error {
	if p.frameTexture != nil && p.frameBounds == bounds {
		return nil
	}
	p.releaseFrameTexture()

	tex, err := p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Composited Frame",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              uint32(bounds.Dx()),
			Height:             uint32(bounds.Dy()),
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("failed to create frame texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create frame view: %w", err)
	}
	bindGroup, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Present Bind Group",
		Layout: p.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: p.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("failed to create bind group: %w", err)
	}

	p.frameTexture, p.frameView, p.bindGroup = tex, view, bindGroup
	p.frameBounds = bounds
	return nil
}

func (p *presenter) Present(frame *image.RGBA) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frame == nil || frame.Bounds().Empty() {
		return nil
	}
	if err := p.ensureFrameTexture(frame.Bounds()); err != nil {
		return err
	}

	w, h := uint32(frame.Bounds().Dx()), uint32(frame.Bounds().Dy())
	p.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  p.frameTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		frame.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(frame.Stride),
			RowsPerImage: h,
		},
		&wgpu.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
	)

	surfaceTexture, err := p.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := p.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish frame: %w", err)
	}
	defer commandBuffer.Release()

	p.queue.Submit(commandBuffer)
	p.surface.Present()

	p.last = frame
	return nil
}

func (p *presenter) ReadFramebuffer() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return nil
	}
	return p.last
}

// releaseFrameTexture frees the per-size frame resources. Caller must hold p.mu.
func (p *presenter) releaseFrameTexture() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.frameView != nil {
		p.frameView.Release()
		p.frameView = nil
	}
	if p.frameTexture != nil {
		p.frameTexture.Release()
		p.frameTexture = nil
	}
}

func (p *presenter) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseFrameTexture()
	if p.sampler != nil {
		p.sampler.Release()
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.device != nil {
		p.device.Release()
		p.device = nil
	}
	if p.adapter != nil {
		p.adapter.Release()
		p.adapter = nil
	}
	if p.surface != nil {
		p.surface.Release()
		p.surface = nil
	}
	if p.instance != nil {
		p.instance.Release()
		p.instance = nil
	}
	p.last = nil
	log.Printf("[Presenter] released")
}
