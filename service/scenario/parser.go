package scenario

import (
	"fmt"
	"strings"

	"github.com/gridlock/gridlock/internal/yml"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a scenario definition.  Scalar counts are coerced with
// toolbox so that loosely typed documents ("total: '2'") still decode.
func (s *Service) DecodeYAML(encoded []byte) (*Definition, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(encoded, &node); err != nil {
		return nil, err
	}
	root := (*yml.Node)(&node)
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		root = (*yml.Node)(node.Content[0])
	}
	def := &Definition{}
	err := root.Pairs(func(key string, value *yml.Node) error {
		switch strings.ToLower(key) {
		case "name":
			def.Name = value.Value
		case "description":
			def.Description = value.Value
		case "ops":
			return value.Items(func(index int, item *yml.Node) error {
				op, err := parseOp(item)
				if err != nil {
					return fmt.Errorf("op %d: %w", index, err)
				}
				def.Ops = append(def.Ops, op)
				return nil
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(def.Ops) == 0 {
		return nil, fmt.Errorf("scenario has no ops")
	}
	return def, nil
}

func parseOp(node *yml.Node) (*Op, error) {
	op := &Op{}
	err := node.Pairs(func(key string, value *yml.Node) error {
		raw := value.Interface()
		switch strings.ToLower(key) {
		case "op", "kind":
			op.Kind = OpKind(toolbox.AsString(raw))
		case "process":
			op.Process = toolbox.AsString(raw)
		case "resource":
			op.Resource = toolbox.AsString(raw)
		case "count":
			op.Count = toolbox.AsInt(raw)
		case "total":
			op.Total = toolbox.AsInt(raw)
		case "priority":
			op.Priority = toolbox.AsInt(raw)
		default:
			return fmt.Errorf("unknown op attribute %q", key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if op.Kind == "" {
		return nil, fmt.Errorf("op kind is required")
	}
	return op, nil
}
