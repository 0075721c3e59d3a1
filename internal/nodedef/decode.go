package nodedef

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the definition blocks of a file and leaves everything
// else, such as catalog types, to other loaders.
type fileRoot struct {
	Nodes   []*nodeBlock   `hcl:"node,block"`
	Methods []*methodBlock `hcl:"method,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type nodeBlock struct {
	Name       string            `hcl:"name,label"`
	Title      string            `hcl:"title,optional"`
	Exec       bool              `hcl:"exec,optional"`
	Generics   []*genericBlock   `hcl:"generic,block"`
	Inputs     []*portBlock      `hcl:"input,block"`
	Outputs    []*portBlock      `hcl:"output,block"`
	Signatures []*signatureBlock `hcl:"signature,block"`
}

type genericBlock struct {
	Name string `hcl:"name,label"`
}

type signatureBlock struct {
	Name    string       `hcl:"name,label"`
	Inputs  []*portBlock `hcl:"input,block"`
	Outputs []*portBlock `hcl:"output,block"`
}

type portBlock struct {
	Name string         `hcl:"name,label"`
	Type hcl.Expression `hcl:"type"`
}

type methodBlock struct {
	Name   string `hcl:"name,label"`
	Type   string `hcl:"type"`
	Member string `hcl:"member"`
	Pure   bool   `hcl:"pure,optional"`
}
