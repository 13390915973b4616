package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Roadmap is a career path laid out as a ReactFlow graph.
type Roadmap struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Nodes       []Node `json:"nodes"`
	Edges       []Edge `json:"edges"`
}

type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NodeData struct {
	Label string `json:"label"`
}

type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Roadmaps proposes career roadmaps from assessment answers.
func (g *Generator) Roadmaps(ctx context.Context, history []QA) ([]Roadmap, error) {
	raw, err := g.complete(ctx, roadmapsPrompt(history))
	if err != nil {
		return nil, err
	}
	maps, err := parseRoadmaps(raw)
	if err != nil {
		logParseFailure(ctx, "roadmaps", err, raw)
		return FallbackRoadmaps(), nil
	}
	return maps, nil
}

// rawNode keeps optional fields as pointers so missing values can be told apart from zero.
type rawNode struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Position *struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"position"`
	Data *NodeData `json:"data"`
}

func parseRoadmaps(raw string) ([]Roadmap, error) {
	var in struct {
		Roadmaps []struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			Nodes       []rawNode `json:"nodes"`
			Edges       []Edge    `json:"edges"`
		} `json:"roadmaps"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &in); err != nil {
		return nil, err
	}
	if len(in.Roadmaps) == 0 {
		return nil, errors.New("roadmaps array missing")
	}

	out := make([]Roadmap, 0, len(in.Roadmaps))
	for i, rm := range in.Roadmaps {
		if rm.Title == "" || rm.Description == "" || rm.Nodes == nil || rm.Edges == nil {
			return nil, fmt.Errorf("invalid roadmap at index %d", i)
		}
		m := Roadmap{Title: rm.Title, Description: rm.Description, Edges: rm.Edges}
		for _, n := range rm.Nodes {
			if n.ID == "" || n.Type == "" || n.Data == nil || n.Data.Label == "" {
				return nil, fmt.Errorf("invalid node in roadmap %q", rm.Title)
			}
			if n.Position == nil || n.Position.X == nil || n.Position.Y == nil {
				return nil, fmt.Errorf("invalid node position in roadmap %q", rm.Title)
			}
			m.Nodes = append(m.Nodes, Node{
				ID:       n.ID,
				Type:     n.Type,
				Position: Position{X: *n.Position.X, Y: *n.Position.Y},
				Data:     *n.Data,
			})
		}
		for _, e := range rm.Edges {
			if e.ID == "" || e.Source == "" || e.Target == "" {
				return nil, fmt.Errorf("invalid edge in roadmap %q", rm.Title)
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// sixStepEdges is the diamond shape every fallback roadmap shares:
// 1 -> 2 -> {3, 4} -> 5 -> 6.
func sixStepEdges() []Edge {
	return []Edge{
		{ID: "e1-2", Source: "1", Target: "2"},
		{ID: "e2-3", Source: "2", Target: "3"},
		{ID: "e2-4", Source: "2", Target: "4"},
		{ID: "e3-5", Source: "3", Target: "5"},
		{ID: "e4-5", Source: "4", Target: "5"},
		{ID: "e5-6", Source: "5", Target: "6"},
	}
}

func sixStepNodes(labels [6]string) []Node {
	pos := [6]Position{
		{X: 250, Y: 0},
		{X: 250, Y: 100},
		{X: 100, Y: 200},
		{X: 400, Y: 200},
		{X: 250, Y: 300},
		{X: 250, Y: 400},
	}
	nodes := make([]Node, 0, 6)
	for i, l := range labels {
		nodes = append(nodes, Node{
			ID:       fmt.Sprint(i + 1),
			Type:     "default",
			Position: pos[i],
			Data:     NodeData{Label: l},
		})
	}
	return nodes
}

func FallbackRoadmaps() []Roadmap {
	return []Roadmap{
		{
			Title:       "Software Developer",
			Description: "A comprehensive path to becoming a skilled software developer",
			Nodes: sixStepNodes([6]string{
				"Learn Programming Fundamentals",
				"Choose Tech Stack",
				"Frontend Development",
				"Backend Development",
				"Build Portfolio Projects",
				"Apply for Junior Developer Roles",
			}),
			Edges: sixStepEdges(),
		},
		{
			Title:       "Product Manager",
			Description: "Path to becoming a strategic product manager",
			Nodes: sixStepNodes([6]string{
				"Understand Business Fundamentals",
				"Learn Product Management Tools",
				"User Research Skills",
				"Data Analysis Skills",
				"Build PM Portfolio",
				"Apply for Associate PM Roles",
			}),
			Edges: sixStepEdges(),
		},
		{
			Title:       "Digital Marketing Specialist",
			Description: "Comprehensive path to digital marketing expertise",
			Nodes: sixStepNodes([6]string{
				"Marketing Fundamentals",
				"Learn Digital Marketing Tools",
				"SEO & Content Marketing",
				"Social Media Marketing",
				"Create Marketing Campaigns",
				"Apply for Marketing Roles",
			}),
			Edges: sixStepEdges(),
		},
	}
}
