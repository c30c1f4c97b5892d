package server

import (
	"slices"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_cache_clear",
		"eye_grayscale",
		"eye_edge_detect",
		"eye_detect_circles",
		"eye_locate",
		"eye_presets",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "eye_presets" || tool.Name == "image_cache_clear" {
			if _, ok := tool.InputSchema["required"]; ok {
				t.Errorf("%s should take no required arguments", tool.Name)
			}
			continue
		}

		required, ok := tool.InputSchema["required"].([]string)
		if !ok || !slices.Contains(required, "path") {
			t.Errorf("%s should require path, got %v", tool.Name, tool.InputSchema["required"])
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		if _, ok := props["path"]; !ok {
			t.Errorf("%s is missing the path property", tool.Name)
		}
	}
}

func TestToolDefinitions_Regions(t *testing.T) {
	for _, name := range []string{"eye_grayscale", "eye_edge_detect", "eye_detect_circles", "eye_locate"} {
		var tool Tool
		for _, tt := range GetToolDefinitions() {
			if tt.Name == name {
				tool = tt
			}
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		region, ok := props["region"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: missing region property", name)
			continue
		}
		enum, _ := region["enum"].([]string)
		for _, want := range []string{"left-eye", "right-eye", "center"} {
			if !slices.Contains(enum, want) {
				t.Errorf("%s: region enum missing %s", name, want)
			}
		}
	}
}

func TestToolDefinitions_EdgeDefaults(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "eye_edge_detect" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		low := props["threshold_low"].(map[string]interface{})["default"]
		high := props["threshold_high"].(map[string]interface{})["default"]
		if low != 80 || high != 100 {
			t.Errorf("edge defaults: got %v/%v, want 80/100", low, high)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
