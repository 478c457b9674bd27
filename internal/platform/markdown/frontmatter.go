package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// SplitFrontmatter separates a YAML frontmatter block from the note body.
// Content without a leading fence is returned as body with empty metadata.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	if !strings.HasPrefix(content, fence) {
		return map[string]any{}, content, nil
	}
	rest := strings.TrimPrefix(content, fence)
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return nil, "", fmt.Errorf("frontmatter has no closing fence")
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return meta, rest[end+len("\n---\n"):], nil
}

// RenderFrontmatter serializes meta as a YAML frontmatter block above body.
func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(fence)
	sb.Write(raw)
	sb.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	return sb.String(), nil
}
