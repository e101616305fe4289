package compiler

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/coregx/coregex"
	"gopkg.in/yaml.v3"
)

// nodeLine matches "AAA = (BBB, CCC)".
var nodeLine = coregex.MustCompile(`^([0-9A-Za-z]+)\s*=\s*\(\s*([0-9A-Za-z]+)\s*,\s*([0-9A-Za-z]+)\s*\)$`)

// SyntaxError reports a line that could not be parsed.
type SyntaxError struct {
	Line   int
	Text   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Parser is responsible for converting raw network definitions into a
// domain.Network.
type Parser struct {
	// SkipValidation leaves dangling successors for the caller to report.
	SkipValidation bool
}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the text format: the instruction line, a blank line, then one
// "ID = (LEFT, RIGHT)" line per node.
func (p *Parser) Parse(data []byte) (*domain.Network, error) {
	net := &domain.Network{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if net.Instructions == "" {
			net.Instructions = line
			continue
		}
		m := nodeLine.FindStringSubmatch(line)
		if m == nil {
			return nil, &SyntaxError{Line: lineNo, Text: line, Reason: "expected ID = (LEFT, RIGHT)"}
		}
		net.Nodes = append(net.Nodes, domain.Node{ID: m[1], Left: m[2], Right: m[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read network: %w", err)
	}
	return p.finish(net)
}

// yamlNetwork keeps nodes as a raw mapping so declaration order survives.
type yamlNetwork struct {
	Instructions string    `yaml:"instructions"`
	Nodes        yaml.Node `yaml:"nodes"`
}

// ParseYAML reads the YAML format:
//
//	instructions: LR
//	nodes:
//	  AAA: [BBB, CCC]
func (p *Parser) ParseYAML(data []byte) (*domain.Network, error) {
	var doc yamlNetwork
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse network yaml: %w", err)
	}

	net := &domain.Network{Instructions: strings.TrimSpace(doc.Instructions)}
	if doc.Nodes.Kind != 0 && doc.Nodes.Kind != yaml.MappingNode {
		return nil, &SyntaxError{Line: doc.Nodes.Line, Text: doc.Nodes.Value, Reason: "nodes must be a mapping"}
	}
	for i := 0; i+1 < len(doc.Nodes.Content); i += 2 {
		key, value := doc.Nodes.Content[i], doc.Nodes.Content[i+1]
		var targets []string
		if err := value.Decode(&targets); err != nil || len(targets) != 2 {
			return nil, &SyntaxError{Line: key.Line, Text: key.Value, Reason: "expected [LEFT, RIGHT]"}
		}
		net.Nodes = append(net.Nodes, domain.Node{ID: key.Value, Left: targets[0], Right: targets[1]})
	}
	return p.finish(net)
}

func (p *Parser) finish(net *domain.Network) (*domain.Network, error) {
	if p.SkipValidation {
		return net, nil
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

// ParseFile reads a network from disk. Files ending in .yaml or .yml use the
// YAML format; anything else is read as text.
func (p *Parser) ParseFile(path string) (*domain.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return p.ParseYAML(data)
	default:
		return p.Parse(data)
	}
}
