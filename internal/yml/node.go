package yml

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node aliases yaml.Node with traversal helpers used by the scenario loader.
type Node yaml.Node

// Lookup returns the value node paired with the supplied mapping key, or nil.
func (n *Node) Lookup(name string) *Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if strings.EqualFold(n.Content[i].Value, name) {
			return (*Node)(n.Content[i+1])
		}
	}
	return nil
}

// Items iterates a sequence node.
func (n *Node) Items(callback func(index int, node *Node) error) error {
	for i := 0; i < len(n.Content); i++ {
		if err := callback(i, (*Node)(n.Content[i])); err != nil {
			return err
		}
	}
	return nil
}

// Pairs iterates a mapping node key by key.
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := callback(n.Content[i].Value, (*Node)(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// Interface converts the node subtree to plain Go values.
func (n *Node) Interface() interface{} {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			return (*Node)(n.Content[0]).Interface()
		}
		return nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			value, _ := strconv.ParseBool(n.Value)
			return value
		case "!!int":
			value, _ := strconv.Atoi(n.Value)
			return value
		case "!!float":
			value, _ := strconv.ParseFloat(n.Value, 64)
			return value
		case "!!null":
			return nil
		default:
			return n.Value
		}
	case yaml.MappingNode:
		aMap := make(map[string]interface{})
		for i := 0; i+1 < len(n.Content); i += 2 {
			aMap[n.Content[i].Value] = (*Node)(n.Content[i+1]).Interface()
		}
		return aMap
	case yaml.SequenceNode:
		aSlice := make([]interface{}, 0, len(n.Content))
		for i := 0; i < len(n.Content); i++ {
			aSlice = append(aSlice, (*Node)(n.Content[i]).Interface())
		}
		return aSlice
	}
	return nil
}
