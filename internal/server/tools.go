package server

import "github.com/ironsheep/iris-locator-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var regionNames = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half",
	"center", "left-eye", "right-eye",
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        regionNames,
		"description": "Optional named region to process instead of the whole image. left-eye and right-eye select the halves of a two-eye capture",
	}
}

func numberProperty(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and channel depth. The decoded image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		{
			Name:        "image_cache_clear",
			Description: "Drop cached images so later calls decode them from disk again. With a path only that image is dropped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Image to drop. Omit to clear the whole cache",
					},
				},
			},
		},

		// Eye Image Views
		{
			Name:        "eye_grayscale",
			Description: "Convert an eye image to grayscale and return it as base64-encoded PNG. Images that are already single-channel, or whose layout cannot be converted, are returned unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"model": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"luma", "lightness"},
						"description": "Gray model: BT.601 luma (default) or CIE lightness",
						"default":     "luma",
					},
					"region": regionProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "eye_edge_detect",
			Description: "Run Canny edge detection on the grayscale eye image and return the edge map as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold_low": map[string]interface{}{
						"type":        "number",
						"description": "Lower hysteresis threshold on the Sobel L1 magnitude",
						"default":     imaging.DefaultEdgeLow,
					},
					"threshold_high": map[string]interface{}{
						"type":        "number",
						"description": "Upper hysteresis threshold on the Sobel L1 magnitude",
						"default":     imaging.DefaultEdgeHigh,
					},
					"region": regionProperty(),
				},
				"required": []string{"path"},
			},
		},

		{
			Name:        "eye_detect_circles",
			Description: "Run the circular Hough transform directly on the grayscale image, without the localization pipeline's morphology and threshold stages. Useful for previewing Hough settings. Circles are returned in source image coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty(),
					"dp":         numberProperty("number", "Inverse accumulator resolution. Default 1"),
					"min_dist":   numberProperty("number", "Minimum distance between centers, 0 means image height / 8"),
					"param1":     numberProperty("number", "Upper threshold of the internal Canny. Default 100"),
					"param2":     numberProperty("number", "Vote threshold. Default 25"),
					"min_radius": numberProperty("integer", "Minimum circle radius in pixels"),
					"max_radius": numberProperty("integer", "Maximum circle radius in pixels, 0 means unbounded"),
					"band_width": numberProperty("number", "Pool edge pixels within this many pixels of the best radius. 0 disables"),
					"region":     regionProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Localization
		{
			Name:        "eye_locate",
			Description: "Locate pupil/iris boundary circles: morphological gradient, automatic threshold, optional Canny, then a circular Hough transform. Returns the candidate circles in source image coordinates, pipeline diagnostics and, by default, an overlay PNG with the circles drawn on the grayscale image. Zero candidates is a normal result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"preset": map[string]interface{}{
						"type":        "string",
						"description": "Parameter preset (see eye_presets). Default otsu-canny",
					},
					"kernel_size": numberProperty("integer", "Structuring element size for the morphological gradient"),
					"kernel_shape": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"rect", "ellipse"},
						"description": "Structuring element shape",
					},
					"threshold": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"otsu", "triangle"},
						"description": "Automatic threshold policy",
					},
					"canny": map[string]interface{}{
						"type":        "boolean",
						"description": "Enable or disable the Canny pass after binarization",
					},
					"canny_low":   numberProperty("number", "Lower Canny threshold after binarization (enables the pass)"),
					"canny_high":  numberProperty("number", "Upper Canny threshold after binarization (enables the pass)"),
					"blur_radius": numberProperty("number", "Gaussian pre-blur radius, 0 disables"),
					"dp":          numberProperty("number", "Inverse accumulator resolution"),
					"min_dist":    numberProperty("number", "Minimum distance between centers, 0 means image height / 8"),
					"param1":      numberProperty("number", "Upper threshold of the Hough stage's internal Canny"),
					"param2":      numberProperty("number", "Hough vote threshold"),
					"min_radius":  numberProperty("integer", "Minimum circle radius in pixels"),
					"max_radius":  numberProperty("integer", "Maximum circle radius in pixels, 0 means unbounded"),
					"region":      regionProperty(),
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale the image to at most this height before locating. Radius parameters apply to the downscaled image; results are mapped back. 0 disables",
						"default":     0,
					},
					"include_overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the overlay PNG. Default true",
						"default":     true,
					},
					"boundary_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color of the boundary circles. Default #FF0000",
					},
					"marker_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color of the center markers. Default #FFFF00",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "eye_presets",
			Description: "List the localization presets with their parameters, and the available processing backends.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
