// Package hcl_adapter loads the renderer configuration from HCL files into
// the format-agnostic config.Model.
//
// Attribute expressions are evaluated with a single variable, env, holding
// the process environment, so files can say url = env.SUPERLUMEN_HOST.
package hcl_adapter
