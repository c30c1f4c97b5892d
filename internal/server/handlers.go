package server

import (
	"encoding/json"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ironsheep/iris-locator-mcp/internal/detection"
	"github.com/ironsheep/iris-locator-mcp/internal/imaging"
	"github.com/ironsheep/iris-locator-mcp/internal/location"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "eye_locate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_cache_clear":
		return s.handleImageCacheClear(args)
	case "eye_grayscale":
		return s.handleEyeGrayscale(args)
	case "eye_edge_detect":
		return s.handleEyeEdgeDetect(args)
	case "eye_detect_circles":
		return s.handleEyeDetectCircles(args)
	case "eye_locate":
		return s.handleEyeLocate(args)
	case "eye_presets":
		return s.handleEyePresets(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// CacheClearResult is the image_cache_clear output.
type CacheClearResult struct {
	// Dropped is the number of images removed from the cache.
	Dropped int `json:"dropped"`

	// Cached is the number of images still cached.
	Cached int `json:"cached"`
}

func (s *Server) handleImageCacheClear(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	before := s.cache.Len()
	if a.Path == "" {
		s.cache.Clear()
	} else {
		s.cache.Evict(a.Path)
	}
	after := s.cache.Len()
	return &CacheClearResult{Dropped: before - after, Cached: after}, nil
}

// loadRegion loads path through the cache and crops it to region when one
// is named. It returns the image and the offset of its origin in the source.
func (s *Server) loadRegion(path, region string) (image.Image, image.Point, error) {
	if path == "" {
		return nil, image.Point{}, fmt.Errorf("path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, image.Point{}, err
	}
	if region == "" {
		return img, image.Point{}, nil
	}

	bounds := img.Bounds()
	rect, err := imaging.NamedRegion(bounds, region)
	if err != nil {
		return nil, image.Point{}, err
	}
	cropped, err := imaging.Crop(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y)
	if err != nil {
		return nil, image.Point{}, err
	}
	return cropped, rect.Min.Sub(bounds.Min), nil
}

// === Eye Image View Handlers ===

type eyeGrayscaleArgs struct {
	Path   string `json:"path"`
	Model  string `json:"model"`
	Region string `json:"region"`
}

// GrayscaleResult is the eye_grayscale output.
type GrayscaleResult struct {
	*imaging.ImageResult

	// SourceChannels is the channel depth of the loaded image.
	SourceChannels int `json:"source_channels"`

	// Passthrough is true when the image was returned without conversion.
	Passthrough bool `json:"passthrough"`
}

func (s *Server) handleEyeGrayscale(args json.RawMessage) (interface{}, error) {
	var a eyeGrayscaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var model imaging.GrayModel
	switch a.Model {
	case "", "luma":
		model = imaging.GrayLuma
	case "lightness":
		model = imaging.GrayLightness
	default:
		return nil, fmt.Errorf("unknown gray model: %s", a.Model)
	}

	img, _, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	channels := imaging.ChannelDepth(img)
	gray := imaging.ToGrayWithModel(img, model)
	encoded, err := imaging.EncodeImage(imaging.ToDisplay(gray))
	if err != nil {
		return nil, err
	}
	return &GrayscaleResult{
		ImageResult:    encoded,
		SourceChannels: channels,
		Passthrough:    channels != 3 && channels != 4,
	}, nil
}

type eyeEdgeDetectArgs struct {
	Path          string   `json:"path"`
	ThresholdLow  *float64 `json:"threshold_low"`
	ThresholdHigh *float64 `json:"threshold_high"`
	Region        string   `json:"region"`
}

func (s *Server) handleEyeEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a eyeEdgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	low, high := float64(imaging.DefaultEdgeLow), float64(imaging.DefaultEdgeHigh)
	if a.ThresholdLow != nil {
		low = *a.ThresholdLow
	}
	if a.ThresholdHigh != nil {
		high = *a.ThresholdHigh
	}

	img, _, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(img, low, high)
}

type eyeDetectCirclesArgs struct {
	Path      string   `json:"path"`
	Region    string   `json:"region"`
	DP        *float64 `json:"dp"`
	MinDist   float64  `json:"min_dist"`
	Param1    *float64 `json:"param1"`
	Param2    *float64 `json:"param2"`
	MinRadius int      `json:"min_radius"`
	MaxRadius int      `json:"max_radius"`
	BandWidth float64  `json:"band_width"`
}

func (s *Server) handleEyeDetectCircles(args json.RawMessage) (interface{}, error) {
	var a eyeDetectCirclesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p := detection.HoughParams{
		DP:        1,
		MinDist:   a.MinDist,
		Param1:    100,
		Param2:    25,
		MinRadius: a.MinRadius,
		MaxRadius: a.MaxRadius,
		BandWidth: a.BandWidth,
	}
	if a.DP != nil {
		p.DP = *a.DP
	}
	if a.Param1 != nil {
		p.Param1 = *a.Param1
	}
	if a.Param2 != nil {
		p.Param2 = *a.Param2
	}
	if p.DP < 0 || p.MinDist < 0 || p.Param1 < 0 || p.Param2 < 0 || p.MinRadius < 0 || p.MaxRadius < 0 || p.BandWidth < 0 {
		return nil, fmt.Errorf("circle search parameters must be non-negative")
	}

	img, offset, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	res := detection.DetectCircles(img, p)
	res.Circles = location.Scale(res.Circles, 1, offset)
	return res, nil
}

// === Localization Handlers ===

type eyeLocateArgs struct {
	Path   string `json:"path"`
	Preset string `json:"preset"`

	KernelSize  *int     `json:"kernel_size"`
	KernelShape *string  `json:"kernel_shape"`
	Threshold   *string  `json:"threshold"`
	Canny       *bool    `json:"canny"`
	CannyLow    *float64 `json:"canny_low"`
	CannyHigh   *float64 `json:"canny_high"`
	BlurRadius  *float64 `json:"blur_radius"`
	DP          *float64 `json:"dp"`
	MinDist     *float64 `json:"min_dist"`
	Param1      *float64 `json:"param1"`
	Param2      *float64 `json:"param2"`
	MinRadius   *int     `json:"min_radius"`
	MaxRadius   *int     `json:"max_radius"`

	Region         string `json:"region"`
	MaxHeight      int    `json:"max_height"`
	IncludeOverlay *bool  `json:"include_overlay"`
	BoundaryColor  string `json:"boundary_color"`
	MarkerColor    string `json:"marker_color"`
}

// apply overrides the preset p with every argument that was given.
func (a *eyeLocateArgs) apply(p *location.Params) {
	if a.KernelSize != nil {
		p.KernelSize = *a.KernelSize
	}
	if a.KernelShape != nil {
		p.KernelShape = imaging.StructuringShape(*a.KernelShape)
	}
	if a.Threshold != nil {
		p.Threshold = imaging.ThresholdPolicy(*a.Threshold)
	}
	if a.Canny != nil && !*a.Canny {
		p.Canny = nil
	}
	if (a.Canny != nil && *a.Canny) || a.CannyLow != nil || a.CannyHigh != nil {
		if p.Canny == nil {
			p.Canny = &location.CannyThresholds{Low: 5, High: 100}
		}
		if a.CannyLow != nil {
			p.Canny.Low = *a.CannyLow
		}
		if a.CannyHigh != nil {
			p.Canny.High = *a.CannyHigh
		}
	}
	if a.BlurRadius != nil {
		p.BlurRadius = *a.BlurRadius
	}
	if a.DP != nil {
		p.DP = *a.DP
	}
	if a.MinDist != nil {
		p.MinDist = *a.MinDist
	}
	if a.Param1 != nil {
		p.Param1 = *a.Param1
	}
	if a.Param2 != nil {
		p.Param2 = *a.Param2
	}
	if a.MinRadius != nil {
		p.MinRadius = *a.MinRadius
	}
	if a.MaxRadius != nil {
		p.MaxRadius = *a.MaxRadius
	}
}

// LocateResult is the eye_locate output.
type LocateResult struct {
	Preset string          `json:"preset"`
	Params location.Params `json:"params"`

	// Candidates are in the coordinates of the loaded image, after undoing
	// region cropping and downscaling.
	Candidates []detection.Circle `json:"candidates"`
	Count      int                `json:"count"`

	// Region is the processed area of the source image.
	Region image.Rectangle `json:"region"`

	// Scale is the factor the image was reduced by before locating.
	Scale float64 `json:"scale"`

	Diagnostics location.Diagnostics `json:"diagnostics"`

	// Overlay shows the region with the candidates drawn in.
	Overlay *imaging.ImageResult `json:"overlay,omitempty"`
}

func (s *Server) handleEyeLocate(args json.RawMessage) (interface{}, error) {
	var a eyeLocateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p, err := s.presets.Get(a.Preset)
	if err != nil {
		return nil, err
	}
	a.apply(&p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	img, offset, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}

	work, mult := imaging.Downscale(img, a.MaxHeight)
	res, err := location.Locate(work, p)
	if err != nil {
		return nil, err
	}

	preset := a.Preset
	if preset == "" {
		preset = location.DefaultPreset
	}
	s.logger.Debug("located",
		zap.String("run_id", res.Diagnostics.RunID),
		zap.String("path", a.Path),
		zap.String("preset", preset),
		zap.Int("candidates", len(res.Candidates)),
		zap.Float64("elapsed_ms", res.Diagnostics.ElapsedMS))

	local := location.Scale(res.Candidates, mult, image.Point{})
	out := &LocateResult{
		Preset:      preset,
		Params:      p,
		Candidates:  location.Scale(local, 1, offset),
		Count:       len(local),
		Region:      image.Rectangle{Min: offset, Max: offset.Add(img.Bounds().Size())},
		Scale:       mult,
		Diagnostics: res.Diagnostics,
	}

	if a.IncludeOverlay == nil || *a.IncludeOverlay {
		style := location.DefaultOverlayStyle()
		if a.BoundaryColor != "" {
			style.BoundaryColor = a.BoundaryColor
		}
		if a.MarkerColor != "" {
			style.MarkerColor = a.MarkerColor
		}
		overlay := res.Overlay
		if mult != 1 || a.BoundaryColor != "" || a.MarkerColor != "" {
			overlay = location.Render(imaging.ToGray(img), local, style)
		}
		encoded, err := imaging.EncodeImage(overlay)
		if err != nil {
			return nil, err
		}
		out.Overlay = encoded
	}
	return out, nil
}

// PresetsResult is the eye_presets output.
type PresetsResult struct {
	Default  string                     `json:"default"`
	Presets  map[string]location.Params `json:"presets"`
	Backends []string                   `json:"backends"`
	Active   string                     `json:"active_backend"`
}

func (s *Server) handleEyePresets(_ json.RawMessage) (interface{}, error) {
	presets := make(map[string]location.Params)
	for _, name := range s.presets.Names() {
		p, err := s.presets.Get(name)
		if err != nil {
			return nil, err
		}
		presets[name] = p
	}
	return &PresetsResult{
		Default:  location.DefaultPreset,
		Presets:  presets,
		Backends: location.Backends(),
		Active:   location.Active().Name(),
	}, nil
}
