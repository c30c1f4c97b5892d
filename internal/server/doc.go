// Package server implements the MCP (Model Context Protocol) server for the
// eye localization tools.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image information:
//   - image_load: Load an image and report its metadata
//   - image_dimensions: Report width and height
//   - image_cache_clear: Drop one or all cached images
//
// Eye views:
//   - eye_grayscale: Single-channel view of an eye image or region
//   - eye_edge_detect: Canny edge map
//   - eye_detect_circles: Raw Hough circle search, for tuning its settings
//
// Localization:
//   - eye_locate: Run the localization pipeline and return pupil/iris
//     candidates with an overlay
//   - eye_presets: List parameter presets and detector backends
//
// Every image tool accepts an optional region ("left-eye", "right-eye",
// quadrants, halves, "center"). eye_locate reports candidates in the
// coordinates of the full source image, whatever region or max_height was
// used to process it; eye_detect_circles does the same for its region.
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the server, so
// repeated calls against one capture decode it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// A localization run that finds nothing is not an error: eye_locate returns
// an empty candidate list and the unmarked overlay.
//
// # Usage
//
//	srv := server.New(
//	    server.WithLogger(logger),
//	    server.WithPresets(presets),
//	)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
