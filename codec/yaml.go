package codec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type yamlCodec struct{}

// YAML returns the YAML codec. Decoded values are normalized to the same
// model the JSON codec produces: mappings become map[string]any with
// non-string keys kept as their source text (status codes such as 200),
// numbers become json.Number and timestamps stay the strings they were
// written as.
func YAML() Codec { return yamlCodec{} }

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Decode(r io.Reader) (any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return fromNode(&doc, map[*yaml.Node]bool{})
}

// Encode writes v as YAML. yaml.Marshaler values are expanded first so
// json.Number leaves they produce are written as YAML numbers.
func (yamlCodec) Encode(w io.Writer, v any) error {
	plain, err := prepareYAML(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plain); err != nil {
		return err
	}
	return enc.Close()
}

// jsonNumber matches the JSON number grammar.
var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// fromNode converts a decoded node tree to plain values. active holds the
// anchors being expanded, so an alias to an enclosing node is an error
// instead of endless recursion.
func fromNode(n *yaml.Node, active map[*yaml.Node]bool) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0], active)
	case yaml.AliasNode:
		if active[n.Alias] {
			return nil, fmt.Errorf("codec: line %d: alias %q refers to itself", n.Line, n.Value)
		}
		active[n.Alias] = true
		defer delete(active, n.Alias)
		return fromNode(n.Alias, active)
	case yaml.SequenceNode:
		arr := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := fromNode(c, active)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case yaml.MappingNode:
		return fromMapping(n, active)
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return nil, fmt.Errorf("codec: line %d: unexpected YAML node kind %d", n.Line, n.Kind)
	}
}

func fromMapping(n *yaml.Node, active map[*yaml.Node]bool) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	var merged []map[string]any
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			m, err := mergeSources(v, active)
			if err != nil {
				return nil, err
			}
			merged = append(merged, m...)
			continue
		}
		key, err := yamlKey(k, active)
		if err != nil {
			return nil, err
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("codec: line %d: mapping key %q already defined", k.Line, key)
		}
		val, err := fromNode(v, active)
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	// Explicit keys win over merged ones; earlier merge sources win over later.
	for _, m := range merged {
		for k, v := range m {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

func mergeSources(v *yaml.Node, active map[*yaml.Node]bool) ([]map[string]any, error) {
	val, err := fromNode(v, active)
	if err != nil {
		return nil, err
	}
	switch t := val.(type) {
	case map[string]any:
		return []map[string]any{t}, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("codec: line %d: merge sequence must hold mappings", v.Line)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("codec: line %d: merge value must be a mapping", v.Line)
	}
}

// yamlKey renders a mapping key as text. Scalar keys keep their source text.
func yamlKey(k *yaml.Node, active map[*yaml.Node]bool) (string, error) {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind == yaml.ScalarNode {
		if k.ShortTag() == "!!null" {
			return "null", nil
		}
		return k.Value, nil
	}
	v, err := fromNode(k, active)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

// fromScalar keeps timestamps and JSON-compatible numbers as their source
// text; other scalars are resolved by yaml.v3.
func fromScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!str", "!!timestamp":
		return n.Value, nil
	case "!!int", "!!float":
		if jsonNumber.MatchString(n.Value) {
			return json.Number(n.Value), nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case int:
		return json.Number(strconv.Itoa(t)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return t, nil
		}
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case time.Time:
		return n.Value, nil
	default:
		return v, nil
	}
}

func prepareYAML(v any) (any, error) {
	switch t := v.(type) {
	case yaml.Marshaler:
		m, err := t.MarshalYAML()
		if err != nil {
			return nil, err
		}
		if _, again := m.(yaml.Marshaler); again {
			return nil, errors.New("codec: MarshalYAML returned another yaml.Marshaler")
		}
		return prepareYAML(m)
	case json.Number:
		return numberNode(t), nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			p, err := prepareYAML(vv)
			if err != nil {
				return nil, err
			}
			out[k] = p
		}
		return out, nil
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			p, err := prepareYAML(t[i])
			if err != nil {
				return nil, err
			}
			arr[i] = p
		}
		return arr, nil
	default:
		return v, nil
	}
}

// numberNode renders n as a plain YAML scalar with its text unchanged, so
// 1.0 stays 1.0.
func numberNode(n json.Number) any {
	text := string(n)
	if !jsonNumber.MatchString(text) {
		return text
	}
	tag := "!!int"
	if strings.ContainsAny(text, ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}
