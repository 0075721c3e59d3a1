package script

import "github.com/hashicorp/hcl/v2"

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "instance", LabelNames: []string{"id"}},
		{Type: "constant", LabelNames: []string{"id"}},
		{Type: "link"},
		{Type: "unlink"},
		{Type: "fix", LabelNames: []string{"node"}},
		{Type: "overload", LabelNames: []string{"node"}},
		{Type: "remove", LabelNames: []string{"node"}},
	},
}

type instanceBlock struct {
	Node string `hcl:"node"`
}

type constantBlock struct {
	Value hcl.Expression `hcl:"value"`
}

type linkBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

type fixBlock struct {
	Generic string         `hcl:"generic"`
	Type    hcl.Expression `hcl:"type"`
}

type overloadBlock struct {
	Index int `hcl:"index"`
}

type removeBlock struct{}
