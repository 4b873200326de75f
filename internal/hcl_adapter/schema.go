package hcl_adapter

// fileRoot is decoded from every file. Later files override earlier ones
// attribute by attribute. Unknown attributes and blocks are decode errors.
type fileRoot struct {
	TemplatesDir string          `hcl:"templates_dir,optional"`
	DefaultView  string          `hcl:"default_view,optional"`
	Host         *hostBlock      `hcl:"host,block"`
	Networks     []*networkBlock `hcl:"network,block"`
}

type hostBlock struct {
	URL                string `hcl:"url,optional"`
	Namespace          string `hcl:"namespace,optional"`
	Timeout            string `hcl:"timeout,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

type networkBlock struct {
	Name    string `hcl:"name,label"`
	Label   string `hcl:"label,optional"`
	URL     string `hcl:"url"`
	Default bool   `hcl:"default,optional"`
}
